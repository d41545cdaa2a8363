package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chrissnell/ptolemy/internal/app"
	"github.com/chrissnell/ptolemy/internal/chart"
	"github.com/chrissnell/ptolemy/internal/log"
	"github.com/chrissnell/ptolemy/pkg/birthtime"
	"github.com/chrissnell/ptolemy/pkg/config"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/report"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "ptolemy.yaml", "Path to the YAML configuration file (optional)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")

	city := flag.String("city", "", "Birth city; omit to be prompted for every input")
	country := flag.String("country", "", "Birth country")
	match := flag.Int("match", 1, "Which geocoder match to use when the place is ambiguous")
	date := flag.String("date", "", "Birth date, YYYY-MM-DD")
	clock := flag.String("time", "", "Birth time, HH:MM on the 24-hour clock, or HH:MM with -ampm")
	ampm := flag.String("ampm", "", "AM or PM when -time is on the 12-hour clock")
	now := flag.Bool("now", false, "Cast the chart for the current moment")
	houses := flag.String("houses", "", "House system name or code (P, W, R, O, E)")
	format := flag.String("format", "", "Output format: text, json or msgpack")
	vsop87 := flag.String("vsop87", "", "Directory of VSOP87B files for the planets")
	logFile := flag.String("log-file", "", "Also write logs to this rotating file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ptolemy %s\n", version)
		os.Exit(0)
	}

	// Load configuration
	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *vsop87 != "" {
		cfgData.Ephemeris.VSOP87Path = *vsop87
	}
	if *houses != "" {
		cfgData.Chart.HouseSystem = *houses
	}
	if *logFile != "" {
		cfgData.Log.File = *logFile
	}

	// Set up logging
	if err := log.Init(*debug || cfgData.Log.Debug, log.FileConfig{
		Path:       cfgData.Log.File,
		MaxSizeMB:  cfgData.Log.MaxSizeMB,
		MaxBackups: cfgData.Log.MaxBackups,
		MaxAgeDays: cfgData.Log.MaxAgeDays,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := app.Options{Interactive: *city == ""}
	if *format != "" {
		if opts.Format, err = report.ParseFormat(*format); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	}

	if !opts.Interactive {
		opts.Request, err = buildRequest(*city, *country, *match, *date, *clock, *ampm, *now)
		if err != nil {
			log.Errorf("Invalid chart request: %v", err)
			os.Exit(1)
		}
		if opts.Request.HouseSystem, err = ephemeris.ParseHouseSystem(cfgData.Chart.HouseSystem); err != nil {
			log.Errorf("Invalid house system: %v", err)
			os.Exit(1)
		}
	}

	// Create and run the application
	application, err := app.New(cfgData, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
	if err := application.Run(context.Background(), opts); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func buildRequest(city, country string, match int, date, clock, ampm string, now bool) (chart.Request, error) {
	req := chart.Request{City: city, Country: country, Match: match - 1}
	if match < 1 {
		return req, fmt.Errorf("-match must be 1 or more")
	}

	if now {
		req.Instant = time.Now()
		return req, nil
	}
	if date == "" || clock == "" {
		return req, fmt.Errorf("-date and -time are required unless -now is given")
	}

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return req, fmt.Errorf("invalid -date %q: %w", date, err)
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return req, fmt.Errorf("invalid -time %q: %w", clock, err)
	}

	req.Time = birthtime.BirthTime{
		Year:   d.Year(),
		Month:  int(d.Month()),
		Day:    d.Day(),
		Hour:   c.Hour(),
		Minute: c.Minute(),
		AMPM:   ampm,
	}
	return req, req.Time.Validate()
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider = config.NewOptionalYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}
