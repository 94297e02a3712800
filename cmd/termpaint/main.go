// Package main is a layered-dashboard demo for the termpaint
// rendering pipeline.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/termpaint/internal/config"
	"github.com/dshills/termpaint/internal/renderer"
	"github.com/dshills/termpaint/internal/renderer/backend"
	"github.com/dshills/termpaint/internal/renderer/core"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	opts, showStats := parseFlags()

	term := backend.NewTerminal(backend.TerminalOptions{
		AltScreen:  opts.AltScreen,
		HideCursor: opts.HideCursor,
	})
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	r, err := renderer.New(term, renderer.Options{
		TrueColor:       opts.TrueColor,
		RedrawThreshold: opts.RedrawThreshold,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	width, height := r.Size()
	root, clockNode := buildDashboard(width, height)
	r.SetRoot(root)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	keys := make(chan byte, 8)
	go readKeys(keys)

	ticker := time.NewTicker(time.Second / time.Duration(opts.MaxFPS))
	defer ticker.Stop()
	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	for {
		select {
		case <-signals:
			return exitWithStats(term, r, showStats)
		case k := <-keys:
			switch k {
			case 'q', 3: // Ctrl-C in raw mode
				return exitWithStats(term, r, showStats)
			case 'f':
				r.RequestRender(true)
			}
		case <-clock.C:
			w, _ := r.Size()
			clockNode.Content = []renderer.Drawable{
				renderer.TextRun{
					X:     w - 11,
					Y:     0,
					Text:  time.Now().Format("15:04:05"),
					Style: core.NewStyle(core.ColorYellow).Bold(),
				},
			}
			r.RequestRender(false)
		case <-ticker.C:
			if _, err := r.Frame(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
	}
}

func exitWithStats(term *backend.Terminal, r *renderer.Renderer, show bool) int {
	term.Shutdown()
	if show {
		s := r.Stats()
		fmt.Printf("frames=%d full=%d diff=%d skipped=%d coalesced=%d bytes=%d\n",
			s.Frames, s.FullFlushes, s.DiffFlushes, s.SkippedFlushes,
			s.CoalescedRequests, s.BytesWritten)
	}
	return 0
}

// buildDashboard assembles the demo draw tree: a shaded background,
// two bordered panels at different depths, and a status layer on top.
// Returns the root and the node holding the live clock.
func buildDashboard(width, height int) (*renderer.Node, *renderer.Node) {
	root := renderer.NewContext("root", core.NewRect(0, 0, width, height), 0)
	root.Content = []renderer.Drawable{
		renderer.Fill{
			Rect:  core.NewRect(0, 0, width, height),
			Style: core.DefaultStyle().WithBackground(core.ColorFromIndex(235)),
		},
	}

	left := renderer.NewContext("panel-left", core.NewRect(2, 2, width/2-3, height-5), 1)
	left.Content = []renderer.Drawable{
		renderer.Border{
			Rect:  core.NewRect(0, 0, width/2-3, height-5),
			Style: core.NewStyle(core.ColorFromIndex(245)),
			Set:   renderer.BorderRounded,
		},
		renderer.TextRun{X: 2, Y: 0, Text: " activity ", Style: core.NewStyle(core.ColorCyan)},
		renderer.TextRun{X: 2, Y: 2, Text: "q to quit, f to force a repaint", Style: core.DefaultStyle()},
	}
	root.AddChild(left)

	right := renderer.NewContext("panel-right", core.NewRect(width/2+1, 2, width/2-3, height-5), 2)
	right.Content = []renderer.Drawable{
		renderer.Border{
			Rect:  core.NewRect(0, 0, width/2-3, height-5),
			Style: core.NewStyle(core.ColorFromIndex(245)),
			Set:   renderer.BorderDouble,
		},
		renderer.TextRun{X: 2, Y: 0, Text: " details ", Style: core.NewStyle(core.ColorMagenta)},
	}
	root.AddChild(right)

	status := renderer.NewContext("status", core.NewRect(0, height-1, width, 1), 10)
	status.Content = []renderer.Drawable{
		renderer.Fill{
			Rect:  core.NewRect(0, 0, width, 1),
			Style: core.DefaultStyle().WithBackground(core.ColorFromIndex(24)),
		},
		renderer.TextRun{
			X:     1,
			Y:     0,
			Text:  "termpaint " + version,
			Style: core.NewStyle(core.ColorWhite).WithBackground(core.ColorFromIndex(24)).Bold(),
		},
	}
	root.AddChild(status)

	clockNode := renderer.NewContext("clock", core.NewRect(0, 0, width, 1), 20)
	root.AddChild(clockNode)
	return root, clockNode
}

func readKeys(out chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			out <- buf[0]
		}
	}
}

func parseFlags() (config.Options, bool) {
	var configPath string
	var showVersion, showStats bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showStats, "stats", false, "Print frame statistics on exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	writeConfig := flag.String("write-config", "", "Write default configuration to a file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("termpaint %s\n", version)
		os.Exit(0)
	}
	if *writeConfig != "" {
		if err := config.WriteDefault(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	opts, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return opts, showStats
}
