package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrissnell/ptolemy/internal/chart"
	"github.com/chrissnell/ptolemy/pkg/config"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/geocode"
	"github.com/chrissnell/ptolemy/pkg/report"
	"go.uber.org/zap"
)

// Options selects what a run does
type Options struct {
	// Interactive prompts for every input on In and ignores Request
	Interactive bool
	Request     chart.Request
	Format      report.Format

	In  io.Reader
	Out io.Writer
}

// App represents the main application
type App struct {
	cfg       *config.ConfigData
	builder   *chart.Builder
	formatter *report.Formatter
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// New creates a new application instance, building the ephemeris and
// geocoder from cfg
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) (*App, error) {
	eph, err := ephemeris.New(ephemeris.Config{VSOP87Path: cfg.Ephemeris.VSOP87Path}, logger)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Geocoder.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	geo := geocode.NewClient(geocode.Config{
		Endpoint:  cfg.Geocoder.Endpoint,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   timeout,
		Limit:     cfg.Geocoder.Limit,
	}, logger)

	return newApp(cfg, chart.NewBuilder(eph, geo, logger), logger), nil
}

func newApp(cfg *config.ConfigData, builder *chart.Builder, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{
		cfg:       cfg,
		builder:   builder,
		formatter: report.NewFormatter(),
		logger:    logger,
		now:       time.Now,
	}
}

// Run casts one chart and writes its report. An interrupt cancels any
// outstanding geocoder request.
func (a *App) Run(ctx context.Context, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Format == "" {
		f, err := report.ParseFormat(a.cfg.Chart.OutputFormat)
		if err != nil {
			return err
		}
		opts.Format = f
	}

	req := opts.Request
	if opts.Interactive {
		if opts.In == nil {
			opts.In = os.Stdin
		}
		var err error
		req, err = a.prompt(ctx, newPrompter(opts.In, opts.Out))
		if err != nil {
			return err
		}
	} else if req.HouseSystem == 0 {
		hs, err := ephemeris.ParseHouseSystem(a.cfg.Chart.HouseSystem)
		if err != nil {
			return err
		}
		req.HouseSystem = hs
	}

	c, err := a.builder.Build(ctx, req)
	if err != nil {
		return err
	}
	a.logger.Infow("chart cast", "id", c.ID, "location", c.Location.DisplayName, "utc", c.UTC, "houses", c.Houses.System.String())

	return a.formatter.Write(opts.Out, c, opts.Format)
}

// prompt walks the user through the inputs for one chart
func (a *App) prompt(ctx context.Context, p *prompter) (chart.Request, error) {
	var req chart.Request

	p.println("\nWelcome to Ptolemy. The free Astrology software.")

	city, err := p.askString("\nEnter the city: ")
	if err != nil {
		return req, err
	}
	country, err := p.askString("Enter the country: ")
	if err != nil {
		return req, err
	}
	req.City, req.Country = city, country

	locs, err := a.builder.Locate(ctx, city, country)
	if err != nil {
		return req, err
	}
	loc := locs[0]
	if len(locs) > 1 {
		p.println("\nMultiple locations found:")
		for i, l := range locs {
			p.printf("%d. %s\n", i+1, l.DisplayName)
		}
		choice, err := p.askInt("\nPlease choose the correct location by number: ", 1, len(locs))
		if err != nil {
			return req, err
		}
		loc = locs[choice-1]
		req.Match = choice - 1
	}
	req.Location = &loc

	useNow, err := p.askYesNo("\nWould you like to use the current date and time? (yes/no): ")
	if err != nil {
		return req, err
	}
	if useNow {
		req.Instant = a.now()
	} else if req.Time, err = p.askBirthTime(); err != nil {
		return req, err
	}

	req.HouseSystem, err = a.askHouseSystem(p)
	return req, err
}

func (a *App) askHouseSystem(p *prompter) (ephemeris.HouseSystem, error) {
	var menu []ephemeris.HouseSystem
	for _, hs := range ephemeris.HouseSystems() {
		if hs.Supported() {
			menu = append(menu, hs)
		}
	}

	def := ephemeris.HouseSystemCode(a.cfg.Chart.HouseSystem)
	p.println("\nThe following are the currently supported house systems: ")
	for i, hs := range menu {
		p.printf("%d: %s\n", i+1, hs)
	}

	line, err := p.askString(fmt.Sprintf("\nEnter the number of the house system you would like to use [%s]: ", def))
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}
	for {
		n, err := parseInt(line, 1, len(menu))
		if err == nil {
			return menu[n-1], nil
		}
		p.printf("%v\n", err)
		if line, err = p.askString("Enter the number of the house system you would like to use: "); err != nil {
			return 0, err
		}
	}
}
