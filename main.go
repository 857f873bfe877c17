package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/purgatorium/prefabs"
	"github.com/milk9111/purgatorium/tracks"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	presetName  = kingpin.Flag("config", "Encounter preset in prefabs/ (basename, .yaml optional)").Default("encounter.yaml").Short('c').String()
	trackName   = kingpin.Flag("track", "Note track in tracks/, overrides the preset").Short('t').String()
	debug       = kingpin.Flag("debug", "Enable debug overlay and event logging").Short('d').Bool()
	watch       = kingpin.Flag("watch", "Reload presets, scripts and tracks when they change on disk").Short('w').Bool()
	baseMonitor = kingpin.Flag("monitor", "Use the first monitor instead of the primary").Short('m').Bool()
	listPresets = kingpin.Flag("list", "List embedded presets and tracks, then exit").Bool()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	if *listPresets {
		printCatalog()
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*presetName, *trackName, *debug)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		game.EnableWatch()
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("purgatorium")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func printCatalog() {
	fmt.Println("presets:")
	for _, name := range prefabs.Presets() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("tracks:")
	for _, name := range tracks.List() {
		fmt.Printf("  %s\n", name)
	}
}
