package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"anpr/configuration"
	"anpr/pkg/anpr"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

// serverCfg and pipeline are set once during startup and read-only afterwards.
var (
	serverCfg configuration.Config
	pipeline  *anpr.Pipeline
)

func main() {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	cfgPath := flag.String("config", "config.yaml", "path of the config file")
	flag.Parse()

	// Support a lightweight migrate command: `./anpr_app migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if flag.NArg() > 0 && flag.Arg(0) == "migrate" {
		initDB()
		log.Println("migration and seeding completed")
		return
	}

	var err error
	serverCfg, err = configuration.GetConfig(*cfgPath)
	if err != nil {
		log.Fatal("config read error: ", err)
	}

	// Detection and recognition models load exactly once here; the process
	// must not serve requests without them.
	pipeline, err = anpr.New(serverCfg.PipelineSettings())
	if err != nil {
		log.Fatal("pipeline init: ", err)
	}

	initDB()

	if dir := watchDir(); dir != "" {
		go watchInbox(dir)
	}

	r := gin.Default()

	setupRoutes(r)

	addr := serverCfg.Server.Address
	if addr == "" {
		addr = ":8081"
	}
	r.Run(addr)
}

// watchDir returns the inbox directory for the watch worker, env overriding
// the config file. Empty disables the worker.
func watchDir() string {
	if v := os.Getenv("WATCH_DIR"); v != "" {
		return v
	}
	return serverCfg.Server.WatchDir
}
