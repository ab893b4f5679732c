// FILE: lixenwraith/tomldir/example/main.go
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/lixenwraith/tomldir"
)

// runnerConfig is a GitLab Runner style configuration with one runner per executor.
const runnerConfig = `
concurrent = 4
check_interval = 3
log_level = "info"

[session_server]
session_timeout = 1800

[[runners]]
name = "shell-runner"
url = "https://gitlab.example.com/"
token = "shell-token"
executor = "shell"

[[runners]]
name = "docker-runner"
url = "https://gitlab.example.com/"
token = "docker-token"
executor = "docker"

[runners.docker]
image = "alpine:latest"
privileged = false
volumes = ["/cache", "/var/run/docker.sock:/var/run/docker.sock"]

[[runners]]
name = "ssh-runner"
url = "https://gitlab.example.com/"
token = "ssh-token"
executor = "ssh"

[runners.ssh]
host = "build.example.com"
port = 22
user = "gitlab"
`

// Runner is the typed view of one [[runners]] entry.
type Runner struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Executor string `toml:"executor"`
	Docker   struct {
		Image   string   `toml:"image"`
		Volumes []string `toml:"volumes"`
	} `toml:"docker"`
}

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write the runner configuration to disk so it can be loaded like a real file.
	// =========================================================================
	dir, err := os.MkdirTemp("", "tomldir-example")
	if err != nil {
		log.Fatalf("FATAL: Could not create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	configFilePath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configFilePath, []byte(runnerConfig), 0644); err != nil {
		log.Fatalf("FATAL: Could not write config file: %v", err)
	}

	// =========================================================================
	// PART 2: LOAD AND ACCESS
	// =========================================================================
	fmt.Println("--- Loading GitLab Runner Config ---")
	cfg, err := tomldir.NewBuilder().
		WithFile(configFilePath).
		WithStoreKind(tomldir.StoreOrdered).
		WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))).
		WithValidator(func(c *tomldir.Config) error {
			if _, ok := c.GetInt("concurrent"); !ok {
				return fmt.Errorf("concurrent must be an integer")
			}
			return nil
		}).
		BuildShared()
	if err != nil {
		log.Fatalf("FATAL: Failed to load config: %v", err)
	}

	if concurrent, ok := cfg.GetInt("concurrent"); ok {
		fmt.Printf("Global concurrency limit: %d\n", concurrent)
	}

	fmt.Println("\n[Runner 0: Shell]")
	name, _ := cfg.GetString("runners[0].name")
	executor, _ := cfg.GetString("runners[0].executor")
	fmt.Printf("Name: %s\nExecutor: %s\n", name, executor)

	fmt.Println("\n[Runner 1: Docker]")
	name, _ = cfg.GetString("runners[1].name")
	image, _ := cfg.GetString("runners[1].docker.image")
	fmt.Printf("Name: %s\nImage: %s\n", name, image)

	fmt.Println("\n[Runner 2: SSH]")
	name, _ = cfg.GetString("runners[2].name")
	host, _ := cfg.GetString("runners[2].ssh.host")
	port, _ := cfg.GetInt("runners[2].ssh.port")
	fmt.Printf("Name: %s\nHost: %s\nPort: %d\n", name, host, port)

	var docker Runner
	if err := cfg.Scan("runners.1", &docker); err != nil {
		log.Fatalf("FATAL: Failed to scan runner: %v", err)
	}
	fmt.Printf("\nScanned docker runner: %s with volumes %v\n", docker.Docker.Image, docker.Docker.Volumes)

	// =========================================================================
	// PART 3: FLATTENING
	// =========================================================================
	fmt.Println("\n--- Flattened Keys (document order) ---")
	for key, value := range cfg.FlatEntries() {
		fmt.Printf("%s = %s\n", key, value)
	}

	fmt.Println("\n--- Full Flattened Dump (sorted) ---")
	flat := cfg.Flatten()
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Printf("%s = %s\n", key, flat[key])
	}

	// =========================================================================
	// PART 4: STORE COMPARISON
	// =========================================================================
	fmt.Println("\n--- Store Comparison ---")
	const iterations = 1000
	for _, kind := range []tomldir.StoreKind{tomldir.StoreHash, tomldir.StoreOrdered, tomldir.StoreSorted} {
		start := time.Now()
		for range iterations {
			if _, err := tomldir.LoadWithStore(runnerConfig, kind.Factory()); err != nil {
				log.Fatalf("FATAL: Load failed: %v", err)
			}
		}
		c, _ := tomldir.LoadWithStore(runnerConfig, kind.Factory())
		fmt.Printf("%-8s %10v  top-level keys: %v\n", kind, time.Since(start)/iterations, c.Keys())
	}
}
