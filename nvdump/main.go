package main

import (
	"os"

	"github.com/gruntwork-io/go-commons/files"
	"github.com/jessevdk/go-flags"
	"github.com/robmorgan/glow/fixture"
	"github.com/robmorgan/glow/logger"
	"github.com/robmorgan/glow/storage"
	"github.com/sirupsen/logrus"
)

type options struct {
	Store string `short:"s" long:"store" description:"path to the sqlite record store" default:"glow.db"`
}

func main() {
	opts := options{}
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := logger.GetProjectLogger()

	if !files.FileExists(opts.Store) {
		logger.Fatalf("no record store at %s", opts.Store)
	}

	store, err := storage.NewSQLiteStore(opts.Store)
	if err != nil {
		logger.Fatalf("could not open %s: %v", opts.Store, err)
	}
	defer store.Close()

	// dump out the persisted record
	r, err := store.GetRecord()
	if err != nil {
		logger.Fatalf("GetRecord: %v", err)
	}

	fields := logrus.Fields{"path": store.Path(), "key": storage.RecordKey, "raw": r.Uint16()}
	for _, ch := range fixture.Channels() {
		fields[ch.String()] = r[ch]
	}
	logger.WithFields(fields).Infof("record: %s", r)
}
