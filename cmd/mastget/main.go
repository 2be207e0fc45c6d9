package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"

	"github.com/jssumme1/rorteazy/internal/manifest"
	"github.com/jssumme1/rorteazy/internal/resolver"
	"github.com/jssumme1/rorteazy/internal/transfer"
	"github.com/jssumme1/rorteazy/internal/utils"
)

type args struct {
	Folder string `arg:"help:Destination folder. Defaults to the MAST bundle folder name"`
	Engine string `arg:"help:Transfer engine to use: curl or native"`
	Limit  string `arg:"help:Download rate limit per file (e.g. 500KB)"`
	Quiet  bool   `arg:"help:Suppress per-file progress output"`
	Yes    bool   `arg:"help:Never prompt; always create a new folder if one exists"`
	Probe  bool   `arg:"help:Report remote file sizes as JSON without downloading"`
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

func main() {
	args := args{}
	args.Folder = manifest.DefaultFolder
	args.Engine = "curl"
	arg.MustParse(&args)

	limit, err := utils.ParseBytes(args.Limit)
	if err != nil {
		log.Fatalf("Invalid --limit: %v", err)
	}
	opts := transfer.Options{RateLimit: limit, Quiet: args.Quiet}

	entries := manifest.Dataset()

	if args.Probe {
		failed := false
		for _, result := range transfer.Probe(context.Background(), entries) {
			data, _ := json.Marshal(result)
			fmt.Println(string(data))
			if result.Error != "" {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		return
	}

	var engine transfer.Engine
	switch args.Engine {
	case "curl":
		curl := transfer.NewCurlEngine(opts)
		// Prerequisite check happens before any folder or manifest work.
		if err := curl.Available(); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		engine = curl
	case "native":
		engine = transfer.NewHTTPEngine(opts)
	default:
		log.Fatalf("Unknown engine %q (want curl or native)", args.Engine)
	}

	var ask resolver.PromptFunc
	if !args.Yes {
		ask = resolver.TerminalPrompt
	}
	session, err := resolver.Resolve(args.Folder, ask)
	if err != nil {
		log.Fatalf("Failed to resolve download folder: %v", err)
	}
	if session.Resume {
		log.Infof("Continuing previous download in %s", session.Folder)
	} else {
		log.Infof("Downloading %d files to %s", len(entries), session.Folder)
	}

	// Ctrl+C leaves the current file partially written; a resumed run
	// picks it up from its current length.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted. Rerun and answer C to resume into "+session.Folder+".")
		os.Exit(1)
	}()

	driver := &transfer.Driver{
		Session: session,
		Engine:  engine,
		Torrent: transfer.NewTorrentEngine(opts),
		Log:     log.StandardLogger(),
	}
	if err := driver.Run(context.Background(), entries); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	log.Infof("All %d files downloaded to %s", len(entries), session.Folder)
}
