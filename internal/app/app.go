package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/cinetix/ticketing/internal/lookup"
	"github.com/cinetix/ticketing/internal/repository"
	appvalidator "github.com/cinetix/ticketing/internal/validator"
	"github.com/cinetix/ticketing/internal/vcs"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	movies   domain.MovieLookup
	theaters domain.TheaterLookup
	users    domain.UserLookup

	showtimeRepo domain.ShowtimeRepository
	bookingRepo  domain.BookingRepository
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
		automigrate  bool
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	services struct {
		moviesURL   string
		theatersURL string
		usersURL    string
		timeout     time.Duration
	}
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3003, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.db.automigrate, "db-automigrate", true, "Run schema migrations on startup")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL for the lookup cache (empty disables caching)")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.services.moviesURL, "movies-url", "http://movies-service:3001", "Movie service base URL")
	flag.StringVar(&cfg.services.theatersURL, "theaters-url", "http://theaters-service:3002", "Theater service base URL")
	flag.StringVar(&cfg.services.usersURL, "users-url", "http://users-service:3004", "User service base URL")
	flag.DurationVar(&cfg.services.timeout, "lookup-timeout", 3*time.Second, "Timeout for collaborator lookups")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	if cfg.db.automigrate {
		err := repository.Migrate(cfg.db.dsn)
		if err != nil {
			return err
		}
	}

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	var movies domain.MovieLookup = lookup.NewMovieClient(cfg.services.moviesURL, cfg.services.timeout, logger)
	var theaters domain.TheaterLookup = lookup.NewTheaterClient(cfg.services.theatersURL, cfg.services.timeout, logger)
	var users domain.UserLookup = lookup.NewUserClient(cfg.services.usersURL, cfg.services.timeout, logger)

	var redisClient redis.UniversalClient

	if cfg.redis.url != "" {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		movies = lookup.NewCachedMovieLookup(movies, redisClient, logger)
		theaters = lookup.NewCachedTheaterLookup(theaters, redisClient, logger)
	}

	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		redis:        redisClient,
		validator:    validator,
		movies:       movies,
		theaters:     theaters,
		users:        users,
		showtimeRepo: showtimeRepo,
		bookingRepo:  bookingRepo,
	}

	return app.run()
}

func newRedisClient(cfg config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.redis.url)
	if err != nil {
		return nil, err
	}

	opts.MaxIdleConns = cfg.redis.maxIdleConns
	opts.MaxActiveConns = cfg.redis.maxOpenConns
	opts.ConnMaxIdleTime = cfg.redis.maxIdleTime

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/", app.GetAllShowtimes)
		r.Post("/", app.AddShowtime)
		r.Get("/{showtimeId}", app.GetShowtime)
		r.Put("/{showtimeId}", app.UpdateShowtime)
		r.Delete("/{showtimeId}", app.DeleteShowtime)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", app.BookTicket)
		r.Get("/{bookingId}", app.GetBooking)
	})

	return r
}
