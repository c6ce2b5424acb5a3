// Command fitdemo exercises the attribute calculation engine against a
// SQLite SDE bundle: it fits a ship with modules, brings them online, and
// prints the ship's requested attributes with every live modifier applied.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/evefit/fitcalc/internal/fit"
	"github.com/evefit/fitcalc/pkg/logger"
	"github.com/evefit/fitcalc/pkg/sde"
)

func main() {
	var (
		dbPath     = flag.String("db", "../../data/sqlite/eve-sde.db", "Path to SQLite SDE database")
		shipTypeID = flag.Int64("ship", 0, "Ship type ID")
		attrs      = flag.String("attrs", "", "Comma-separated attribute IDs to print")
		modules    = flag.String("modules", "", "Comma-separated module type IDs to fit online")
	)
	flag.Parse()

	if *shipTypeID == 0 {
		log.Fatal("fitdemo: -ship is required")
	}

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		log.Fatalf("fitdemo: database not found: %s", *dbPath)
	}

	src, err := sde.OpenSQLiteSource(*dbPath)
	if err != nil {
		log.Fatalf("fitdemo: failed to open SDE source: %v", err)
	}
	defer src.Close()

	lg := logger.New("fitdemo")

	f := fit.NewFitWithLogger(src, lg.Named("fit"))

	ship := fit.NewShip(*shipTypeID)
	if err := f.Add(ship); err != nil {
		lg.Error("failed to add ship", "error", err)
		os.Exit(1)
	}

	for _, typeID := range parseInt64List(*modules) {
		m := fit.NewModule(typeID)
		if err := f.Add(m); err != nil {
			lg.Error("failed to add module", "type_id", typeID, "error", err)
			continue
		}
		if err := m.SetState(sde.StateOnline); err != nil {
			lg.Error("failed to online module", "type_id", typeID, "error", err)
		}
	}

	fmt.Printf("\n=== Fit Attribute Report ===\n\n")
	fmt.Printf("Ship type: %d\n", *shipTypeID)

	for _, attr := range parseInt64List(*attrs) {
		v, err := ship.Attribute(sde.AttrID(attr))
		if err != nil {
			fmt.Printf("  attribute %d: unavailable (%v)\n", attr, err)
			continue
		}
		fmt.Printf("  attribute %d: %s\n", attr, formatNumber(v))
	}
}

func parseInt64List(s string) []int64 {
	if s == "" {
		return nil
	}
	var out []int64
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				var v int64
				fmt.Sscanf(s[start:i], "%d", &v)
				out = append(out, v)
			}
			start = i + 1
		}
	}
	return out
}

// formatNumber formats a value with two decimal places, trimming a
// trailing ".00" for whole numbers.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
