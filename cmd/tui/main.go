// Command tui walks a generated space in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/beka-birhanu/vinom-walker/config"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/infrastruture/imagequeue"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/beka-birhanu/vinom-walker/session"
	"github.com/beka-birhanu/vinom-walker/tui"
	"github.com/gdamore/tcell/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	mode := flag.String("mode", config.Envs.DefaultMode, "layout mode: maze, openroom, alley, bsp, pillars, polygon")
	size := flag.Int("size", config.Envs.DefaultSize, "layout size, 0 for the mode default")
	seed := flag.Int64("seed", 0, "random seed")
	tickRate := flag.Int("tick", config.Envs.TickRate, "ticks per second")
	useRedis := flag.Bool("redis", false, "hang images from the redis queue")
	logPath := flag.String("log", "", "log file, logs are discarded when empty")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "[WALKER] ", log.LstdFlags)
	}

	m, err := layout.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var images i.ImageProvider
	if *useRedis {
		client := redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr, Password: config.Envs.RedisPassword})
		defer client.Close()
		images, err = imagequeue.NewRedisImageQueue(client, config.Envs.ImageQueueKey, config.Envs.ImageBatchSize, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		images = imagequeue.NewMemoryImageQueue(true, sampleImages()...)
	}

	s, err := session.New(session.Config{
		Mode:       m,
		Size:       *size,
		Seed:       *seed,
		Images:     images,
		Logger:     logger,
		ExitChance: 0.2,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tui.NewApp(screen, s, *tickRate, logger).Run(ctx); err != nil {
		logger.Printf("%s[ERROR]%s %v", config.LogErrorColor, config.LogColorReset, err)
	}
}

func sampleImages() []*dmn.Image {
	titles := []string{"Harbour at Dusk", "Orchard in Snow", "Quarry Light", "The Long Table", "Salt Flats"}
	images := make([]*dmn.Image, 0, len(titles))
	for n, title := range titles {
		img, err := dmn.NewImage(fmt.Sprintf("https://picsum.photos/seed/walker%d/512/384", n), title)
		if err == nil {
			images = append(images, img)
		}
	}
	return images
}
