// Command sts expands streams of short timestamps into full timestamps.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shorttimeseries/internal/adapters/driving/cli"
	"github.com/custodia-labs/shorttimeseries/internal/core/services"
)

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "sts: loading config: %v\n", err)
		os.Exit(cli.ExitConfig)
	}

	cli.SetServices(cli.Services{
		Timeseries: services.NewTimeseriesService(),
		Settings:   services.NewSettingsService(configStore),
		OpenStore: func(dir string) (cli.RunStoreCloser, error) {
			store, err := sqlite.NewStore(dir)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})

	os.Exit(cli.Execute())
}
