package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ConfigureInteractive allows users to interactively adjust screening settings
func ConfigureInteractive(cfg *Config) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n⚙️  Configuration Menu:")
		fmt.Println("1. View Current Configuration")
		fmt.Println("2. Configure Screening Settings")
		fmt.Println("3. Save & Exit")
		fmt.Print("Select option: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch choice {
		case "1":
			DisplayConfiguration(cfg)
		case "2":
			configureScreening(cfg, reader)
		case "3":
			if err := SaveConfig(cfg); err != nil {
				fmt.Printf("❌ Error saving config: %v\n", err)
				continue
			}
			fmt.Println("✅ Configuration saved successfully!")
			return nil
		default:
			fmt.Println("❌ Invalid option")
		}
	}
}

// DisplayConfiguration shows current configuration
func DisplayConfiguration(cfg *Config) {
	fmt.Println("\n📋 Current Configuration:")
	fmt.Println("\n=== Screening ===")
	fmt.Printf("  • Workers: %d\n", cfg.Screening.Workers)
	fmt.Printf("  • Top K: %d\n", cfg.Screening.TopK)
	fmt.Printf("  • Default Universe: %s\n", cfg.Screening.DefaultUniverse)
	fmt.Printf("  • Schedule: %s\n", cfg.Screening.Schedule)

	fmt.Println("\n=== Analysis ===")
	fmt.Printf("  • Bar Limit: %d\n", cfg.Analysis.BarLimit)

	fmt.Println("\n=== Universes ===")
	for _, name := range cfg.UniverseNames() {
		fmt.Printf("  • %s: %d symbols\n", name, len(cfg.Universes[name]))
	}

	fmt.Println("\n=== Server ===")
	fmt.Printf("  • Address: %s\n", cfg.Server.Addr)
}

func configureScreening(cfg *Config, reader *bufio.Reader) {
	fmt.Printf("\nWorkers [%d]: ", cfg.Screening.Workers)
	if v, ok := readInt(reader); ok && v > 0 {
		cfg.Screening.Workers = v
	}

	fmt.Printf("Top K [%d]: ", cfg.Screening.TopK)
	if v, ok := readInt(reader); ok && v > 0 {
		cfg.Screening.TopK = v
	}

	fmt.Printf("Default universe [%s]: ", cfg.Screening.DefaultUniverse)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line != "" {
		if _, err := cfg.Universe(line); err != nil {
			fmt.Printf("❌ %v\n", err)
		} else {
			cfg.Screening.DefaultUniverse = strings.ToLower(line)
		}
	}

	fmt.Printf("Cron schedule [%s] (empty to disable): ", cfg.Screening.Schedule)
	line, _ = reader.ReadString('\n')
	cfg.Screening.Schedule = strings.TrimSpace(line)

	fmt.Println("✅ Screening settings updated")
}

func readInt(reader *bufio.Reader) (int, bool) {
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		fmt.Printf("❌ Not a number: %q\n", line)
		return 0, false
	}
	return v, true
}
