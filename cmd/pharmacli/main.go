package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/deltapharm/pharmacy-client-golang/internal/api"
	"github.com/deltapharm/pharmacy-client-golang/internal/cart"
	"github.com/deltapharm/pharmacy-client-golang/internal/checkout"
	"github.com/deltapharm/pharmacy-client-golang/internal/config"
	"github.com/deltapharm/pharmacy-client-golang/internal/services"
	"github.com/deltapharm/pharmacy-client-golang/internal/session"
	"github.com/deltapharm/pharmacy-client-golang/internal/storage"
	"github.com/deltapharm/pharmacy-client-golang/pkg/logger"
)

// app bundles the wired containers and services for the commands.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	session  *session.Container
	cart     *cart.Container
	wizard   *checkout.Wizard
	products *services.ProductService
	orders   *services.OrderService
	rx       *services.PrescriptionService
	support  *services.SupportService
	chat     *services.ChatService
	notifs   *services.NotificationService
	users    *services.UserService
	stats    *services.AnalyticsService
}

func main() {
	// 1. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		// Not an error: system env vars are enough outside local dev.
		log.Println("no .env file found, relying on system environment variables")
	}
	cfg := config.Load()

	// 2. --- Logger ---
	logg := logger.New(logger.Options{
		Service: "pharmacli",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	// 3. --- Durable Client Storage ---
	store, err := storage.Open(cfg.StateFile)
	if err != nil {
		logg.Error("failed to open state file", "path", cfg.StateFile, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	// 4. --- API Client + State Containers ---
	// The session container supplies the bearer token for every request,
	// so it is wired into the client right after both exist.
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, logg)
	sess := session.New(store, client, logg)
	client.SetTokenSource(sess.Token)
	basket := cart.New(store, logg)

	sess.Initialize()
	basket.Initialize()

	// 5. --- Services ---
	orders := services.NewOrderService(client)
	payments := services.NewPaymentService(client)

	a := &app{
		cfg:      cfg,
		log:      logg,
		session:  sess,
		cart:     basket,
		wizard:   checkout.NewWizard(basket, sess, orders, payments, logg),
		products: services.NewProductService(client),
		orders:   orders,
		rx:       services.NewPrescriptionService(client),
		support:  services.NewSupportService(client),
		chat:     services.NewChatService(client),
		notifs:   services.NewNotificationService(client),
		users:    services.NewUserService(client),
		stats:    services.NewAnalyticsService(client),
	}

	// 6. --- Command Dispatch ---
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pharmacli <command> [args]

commands:
  login <email> <password>        sign in and persist the session
  register                        create an account (flags: -name -email -password -phone -address)
  logout                          clear the persisted session
  whoami                          show the current session
  menu                            screens visible to the current role
  products [search <query>]       list or search the catalog
  cart show|add|qty|remove|clear  manage the local cart
  checkout                        place the order (flags: -address -method [-card-* ...])
  orders                          list orders
  prescriptions [pending]         list prescriptions
  support                         list support tickets
  chat <partner-id>               follow a conversation (Ctrl-C to stop)
  notifications [unread]          list notifications
  users                           list users (admin)
  dashboard                       show dashboard stats`)
}
