package main

import (
	"os"

	"github.com/belinwu/WeatherApp/cmd/weatherapp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
