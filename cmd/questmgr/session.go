package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/nathoo/questmgr/cli"
	"github.com/nathoo/questmgr/config"
	"github.com/nathoo/questmgr/engine/generator"
	"github.com/nathoo/questmgr/engine/manager"
	"github.com/nathoo/questmgr/engine/save"
	"github.com/nathoo/questmgr/loader"
	"github.com/nathoo/questmgr/logging"
	"github.com/nathoo/questmgr/sim"
	"github.com/nathoo/questmgr/store"
	"github.com/nathoo/questmgr/types"
)

// sessionOptions are the command line flags. The *Set fields record which
// flags were given so that unset ones fall back to the environment.
type sessionOptions struct {
	catalog  string
	db       string
	slot     string
	script   string
	tutorial bool
	seed     int64
	logLevel string
	fresh    bool

	catalogSet  bool
	dbSet       bool
	slotSet     bool
	tutorialSet bool
	seedSet     bool
	levelSet    bool
}

func (o sessionOptions) apply(cfg *config.Config) {
	if o.catalogSet {
		cfg.CatalogDir = o.catalog
	}
	if o.dbSet {
		cfg.DBPath = o.db
	}
	if o.slotSet {
		cfg.Slot = o.slot
	}
	if o.tutorialSet {
		cfg.PlayTutorial = o.tutorial
	}
	if o.seedSet {
		cfg.Seed = o.seed
	}
	if o.levelSet {
		cfg.LogLevel = o.logLevel
	}
}

func run(ctx context.Context, opts sessionOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := slog.New(logging.NewHandler(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd())))
	slog.SetDefault(log)

	cat, err := loadCatalog(cfg.CatalogDir, opts.catalogSet, log)
	if err != nil {
		return err
	}

	database, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	slots := store.NewSlotStore(database)

	world := sim.New(cat.Sectors)
	gen := generator.New(world, generator.Options{
		Seed:          cfg.Seed,
		ChancePercent: cfg.GeneratorChance,
		Logger:        log.With("component", "generator"),
	})
	m := manager.New(manager.Options{
		Game:      world,
		Notifier:  cli.NewNotifier(os.Stdout),
		Generator: gen,
		Catalog:   cat.Quests,
		Logger:    log.With("component", "manager"),
	})
	world.SetListener(m)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	data := types.QuestSave{PlayTutorial: cfg.PlayTutorial}
	if !opts.fresh {
		restored, err := restore(ctx, slots, cfg.Slot)
		if err != nil {
			return err
		}
		if restored != nil {
			world.Restore(restored.World)
			data = restored.Quests
			log.Info("save restored", "slot", cfg.Slot)
		}
	}
	m.Load(data)

	c := cli.New(m, world)
	c.Slots = slots
	c.Slot = cfg.Slot

	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}

	c.Run(ctx)
	return nil
}

// loadCatalog reads the Lua catalog. A missing default directory yields an
// empty catalog; a missing directory named on the command line is an error.
func loadCatalog(dir string, explicit bool, log *slog.Logger) (*loader.Catalog, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) && !explicit {
		log.Warn("catalog directory not found, starting without catalog", "dir", dir)
		return &loader.Catalog{}, nil
	}
	cat, err := loader.Load(dir, log.With("component", "loader"))
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

// restore returns the save of the slot, or nil when the slot is empty.
func restore(ctx context.Context, slots *store.SlotStore, slot string) (*save.SaveData, error) {
	stored, err := slots.Get(ctx, slot)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	sd, err := save.Load(stored.Data)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot, err)
	}
	return sd, nil
}
