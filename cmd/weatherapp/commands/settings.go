package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/belinwu/WeatherApp/model"
	"github.com/belinwu/WeatherApp/settings"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
	}
	cmd.AddCommand(settingsGetCmd(), settingsSetCmd(), settingsResetCmd())
	return cmd
}

func settingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current settings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(cmd.Context(), func(s *settings.Settings) error {
				data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

// set: only the flags given are written.
func settingsSetCmd() *cobra.Command {
	var language, units, location string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change language, units or default location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if language == "" && units == "" && location == "" {
				return fmt.Errorf("nothing to set: use --language, --units or --location")
			}

			return withSettings(cmd.Context(), func(s *settings.Settings) error {
				ctx := cmd.Context()
				if language != "" {
					lang, err := model.ParseLanguage(language)
					if err != nil {
						return err
					}
					if err := s.SetLanguage(ctx, lang); err != nil {
						return err
					}
				}
				if units != "" {
					u, err := model.ParseUnits(units)
					if err != nil {
						return err
					}
					if err := s.SetUnits(ctx, u); err != nil {
						return err
					}
				}
				if location != "" {
					loc, err := parseLocation(location)
					if err != nil {
						return err
					}
					if err := s.SetDefaultLocation(ctx, loc); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", s.Snapshot())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "language tag (en, fr, de-CH, ...)")
	cmd.Flags().StringVar(&units, "units", "", "metric or imperial")
	cmd.Flags().StringVar(&location, "location", "", "default location as lat,lon")
	return cmd
}

func settingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(cmd.Context(), func(s *settings.Settings) error {
				return s.Reset(cmd.Context())
			})
		},
	}
}

func withSettings(ctx context.Context, fn func(*settings.Settings) error) error {
	if cfg.Settings.Backend == settings.BackendMemory {
		logger.Warn("settings backend is memory; changes are not persisted")
	}

	st, err := settings.NewStore(&cfg.Settings)
	if err != nil {
		return err
	}
	s, err := settings.Open(ctx, st, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

func parseLocation(value string) (model.Location, error) {
	lat, lon, ok := strings.Cut(value, ",")
	if !ok {
		return model.Location{}, fmt.Errorf("invalid location %q: want lat,lon", value)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	return model.NewLocation(latitude, longitude), nil
}
