package main

import (
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Normalize a raw forecast payload read from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("location")
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")

			payload, err := domain.ParsePayload(data)
			if err != nil {
				return err
			}
			normalized, err := domain.Assemble(payload, domain.Location{Name: name, Latitude: lat, Longitude: lon})
			if err != nil {
				return err
			}
			return render(cmd, normalized)
		},
	}
	cmd.Flags().StringP("location", "l", "", "fallback location name when the payload has none")
	cmd.Flags().Float64("lat", 0, "fallback latitude")
	cmd.Flags().Float64("lon", 0, "fallback longitude")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
