package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"defaulter-fixtures-go/attendance"
	"defaulter-fixtures-go/config"
	"defaulter-fixtures-go/db"
	"defaulter-fixtures-go/handlers"
	"defaulter-fixtures-go/internal/logger"
	"defaulter-fixtures-go/loader"
	"defaulter-fixtures-go/models"
	"defaulter-fixtures-go/roster"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	switch command {
	case "students":
		handleStudents(cfg, args)
	case "attendance":
		handleAttendance(cfg, args)
	case "load":
		handleLoad(ctx, cfg, args)
	case "import-history":
		handleImportHistory(ctx, cfg, args)
	case "serve":
		handleServe(ctx, cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
}

func handleStudents(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("students", flag.ContinueOnError)
	out := fs.String("out", cfg.RosterPath, "roster CSV to write")
	total := fs.Int("total", roster.DefaultOptions().Total, "number of students")
	seed := fs.Int64("seed", cfg.Seed, "random seed")
	parseFlags(fs, args)

	opts := roster.DefaultOptions()
	opts.Total = *total

	students, err := roster.Generate(opts, rand.New(rand.NewSource(*seed)))
	if err != nil {
		logger.LogError("Failed to generate students", err)
		os.Exit(1)
	}

	if err := writeRoster(*out, students); err != nil {
		logger.LogError("Failed to write roster", err, "path", *out)
		os.Exit(1)
	}
	logger.LogInfo("Roster written", "path", *out, "seed", *seed)

	counts := roster.Summary(students)
	fmt.Printf("Generated %d students and saved to %s\n", len(students), *out)
	for _, y := range models.Years {
		fmt.Printf("%s: %d students\n", y, counts[y])
	}
}

func writeRoster(path string, students []models.Student) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := roster.WriteCSV(f, students); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readRoster(path string) ([]models.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return roster.ReadCSV(f)
}

func handleAttendance(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("attendance", flag.ContinueOnError)
	in := fs.String("roster", cfg.RosterPath, "roster CSV to read")
	outDir := fs.String("out", cfg.OutputDir, "directory for generated sheets")
	months := fs.Int("months", cfg.PeriodCount, "number of monthly periods")
	seed := fs.Int64("seed", cfg.Seed, "random seed")
	parseFlags(fs, args)

	cfg.PeriodCount = *months
	if err := cfg.Validate(); err != nil {
		logger.LogError("Invalid -months", err, "months", *months)
		os.Exit(2)
	}

	students, err := readRoster(*in)
	if err != nil {
		logger.LogError("Failed to read roster", err, "path", *in)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.LogError("Failed to create output directory", err, "dir", *outDir)
		os.Exit(1)
	}

	step := attendance.StepCalendar
	if cfg.PeriodStepping == config.SteppingFixed30 {
		step = attendance.StepFixed30
	}
	periods, err := attendance.Periods(cfg.PeriodStart, cfg.PeriodCount, step)
	if err != nil {
		logger.LogError("Invalid period range", err)
		os.Exit(2)
	}

	src := rand.New(rand.NewSource(*seed))
	profiles := attendance.AssignBaseRates(students, src)

	files := 0
	err = attendance.Generate(profiles, attendance.DefaultSubjects(), periods, src, func(b attendance.Batch) error {
		path, err := attendance.WriteBatchFile(*outDir, b)
		if err != nil {
			return err
		}
		logger.LogDebug("Wrote sheet", "path", path, "held", b.Held)
		n, defaulters := b.Stats()
		fmt.Printf("Generated %s (%d students, %d defaulters)\n", filepath.Base(path), n, defaulters)
		files++
		return nil
	})
	if err != nil {
		logger.LogError("Failed to generate attendance sheets", err, "written", files)
		os.Exit(1)
	}

	fmt.Printf("\nGenerated %d attendance sheets in %s\n", files, *outDir)
}

func handleLoad(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	in := fs.String("roster", cfg.RosterPath, "roster CSV to load")
	parseFlags(fs, args)

	if err := cfg.RequireDatabase(); err != nil {
		logger.LogError("Cannot load students", err)
		os.Exit(1)
	}

	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}
	defer database.Close()

	store := db.NewStudentStore(database)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.LogError("Failed to prepare student table", err)
		os.Exit(1)
	}

	res, err := loader.LoadFile(ctx, store, *in)
	if err != nil {
		logger.LogError("Error inserting students", err)
		os.Exit(1)
	}
	res.Print(os.Stdout)
}

func handleImportHistory(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import-history", flag.ContinueOnError)
	dir := fs.String("dir", cfg.OutputDir, "directory of generated sheets")
	threshold := fs.Float64("threshold", attendance.DefaulterThreshold, "present/absent cut-off percentage")
	parseFlags(fs, args)

	if err := cfg.RequireDatabase(); err != nil {
		logger.LogError("Cannot import history", err)
		os.Exit(1)
	}

	paths, err := filepath.Glob(filepath.Join(*dir, "*.xlsx"))
	if err != nil {
		logger.LogError("Failed to list sheets", err, "dir", *dir)
		os.Exit(1)
	}
	sort.Strings(paths)
	logger.LogInfo("Found attendance sheets", "dir", *dir, "count", len(paths))

	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}
	defer database.Close()

	store := db.NewHistoryStore(database)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.LogError("Failed to prepare history table", err)
		os.Exit(1)
	}

	imported, skipped := 0, 0
	for _, path := range paths {
		if err := importSheet(ctx, store, path, *threshold); err != nil {
			logger.LogWarn("Skipping sheet", "path", path, "error", err)
			skipped++
			continue
		}
		imported++
	}

	total, err := store.Count(ctx)
	if err != nil {
		logger.LogError("Failed to count history", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d sheets (%d skipped). attendance_backup now holds %d sheets\n", imported, skipped, total)
}

func importSheet(ctx context.Context, store *db.HistoryStore, path string, threshold float64) error {
	info, err := attendance.ParseFileName(path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := attendance.ReadSheet(f)
	if err != nil {
		return err
	}

	h := db.NewSheetHistory(filepath.Base(path), info.Stream, info.Subject, info.Period, records, content, threshold)
	return store.SaveSheet(ctx, h)
}

func handleServe(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.String("port", cfg.AppPort, "HTTP port")
	in := fs.String("roster", cfg.RosterPath, "roster CSV used to seed an empty cache")
	parseFlags(fs, args)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	redisClient, err := db.InitializeRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cancel()
	if err != nil {
		logger.LogError("Failed to connect to Redis", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	redisService := db.NewRedisService(redisClient)
	checkAndSeedData(redisService, *in)

	router := handlers.SetupRouter(handlers.NewAPIHandler(redisService))

	addr := ":" + *port
	logger.LogInfo("Starting server", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.LogError("Failed to run server", err)
		os.Exit(1)
	}
}

// checkAndSeedData caches the roster when Redis holds no cohorts yet
func checkAndSeedData(service *db.RedisService, rosterPath string) {
	count, err := service.CohortCount()
	if err != nil {
		logger.LogWarn("Could not check Redis for existing cohorts, skipping seed", "error", err)
		return
	}
	if count > 0 {
		logger.LogInfo("Found cached cohorts, skipping seed", "count", count)
		return
	}

	students, err := readRoster(rosterPath)
	if err != nil {
		logger.LogWarn("No roster to seed from", "path", rosterPath, "error", err)
		return
	}
	cached, err := service.CacheRoster(students)
	if err != nil {
		logger.LogError("Failed to seed Redis", err)
		return
	}
	logger.LogInfo("Seeded Redis from roster", "path", rosterPath, "students", cached)
}

func printUsage() {
	fmt.Println("Usage: defaulter-fixtures <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  students         Generate the synthetic roster CSV")
	fmt.Println("  attendance       Generate one attendance sheet per stream, subject and month")
	fmt.Println("  load             Insert the roster into student_details_db and print the distribution")
	fmt.Println("  import-history   Store generated sheets in attendance_backup")
	fmt.Println("  serve            Cache the roster in Redis and serve the cohort API")
	fmt.Println("  help             Show this help message")
	fmt.Println()
	fmt.Println("Configuration is read from the environment and .env:")
	fmt.Println("  DATABASE_URL, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, APP_PORT, SEED,")
	fmt.Println("  OUTPUT_DIR, ROSTER_PATH, PERIOD_START, PERIOD_COUNT, PERIOD_STEPPING, LOG_LEVEL")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  defaulter-fixtures students -seed 42")
	fmt.Println("  defaulter-fixtures attendance -months 12")
	fmt.Println("  DATABASE_URL=postgres://localhost/school defaulter-fixtures load")
}
