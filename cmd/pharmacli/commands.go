package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/deltapharm/pharmacy-client-golang/internal/chat"
	"github.com/deltapharm/pharmacy-client-golang/internal/checkout"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
	"github.com/deltapharm/pharmacy-client-golang/internal/nav"
	"github.com/deltapharm/pharmacy-client-golang/internal/session"
)

func (a *app) run(command string, args []string) error {
	ctx := context.Background()

	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.session.Logout()
	case "whoami":
		return a.cmdWhoami()
	case "menu":
		return a.cmdMenu()
	case "products":
		return a.cmdProducts(ctx, args)
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx)
	case "prescriptions":
		return a.cmdPrescriptions(ctx, args)
	case "support":
		return a.cmdSupport(ctx)
	case "chat":
		return a.cmdChat(ctx, args)
	case "notifications":
		return a.cmdNotifications(ctx, args)
	case "users":
		return a.cmdUsers(ctx)
	case "dashboard":
		return a.cmdDashboard(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireRole blocks commands behind the navigation policy, the same gate
// the screens use.
func (a *app) requireRole(screen nav.Screen) (*models.User, error) {
	user := a.session.User()
	if user == nil {
		return nil, fmt.Errorf("not logged in")
	}
	if !nav.CanAccess(user.Role, screen) {
		return nil, fmt.Errorf("role %s has no access to %s", user.Role, screen)
	}
	return user, nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: pharmacli login <email> <password>")
	}
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 6 characters)")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, session.RegisterInput{
		FullName:    *name,
		Email:       *email,
		Password:    *password,
		PhoneNumber: *phone,
		Address:     *address,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func (a *app) cmdWhoami() error {
	if !a.session.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	user := a.session.User()
	fmt.Printf("%s <%s> role=%s\n", user.FullName, user.Email, user.Role)
	return nil
}

func (a *app) cmdMenu() error {
	user := a.session.User()
	if user == nil {
		return fmt.Errorf("not logged in")
	}
	for _, screen := range nav.MenuFor(user.Role) {
		fmt.Println(screen)
	}
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	if _, err := a.requireRole(nav.ScreenProducts); err != nil {
		return err
	}

	var (
		list []models.Product
		err  error
	)
	if len(args) >= 2 && args[0] == "search" {
		list, err = a.products.Search(ctx, args[1])
	} else {
		list, err = a.products.List(ctx)
	}
	if err != nil {
		return err
	}

	for _, p := range list {
		rx := ""
		if p.PrescriptionRequired {
			rx = " [Rx]"
		}
		fmt.Printf("%6d  %-40s %8.2f  stock=%d%s\n", p.ID, p.Name, p.Price, p.StockQuantity, rx)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		for _, line := range a.cart.Lines() {
			fmt.Printf("%6d  %-40s %8.2f x%d\n", line.ProductID, line.Name, line.Price, line.Quantity)
		}
		fmt.Printf("items: %d  total: %.2f\n", a.cart.ItemCount(), a.cart.Total())
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: pharmacli cart add <product-id> [quantity]")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		quantity := 1
		if len(args) >= 3 {
			if quantity, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}
		product, err := a.products.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.cart.Add(product, quantity)

	case "qty":
		if len(args) != 3 {
			return fmt.Errorf("usage: pharmacli cart qty <product-id> <quantity>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		return a.cart.UpdateQuantity(id, quantity)

	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: pharmacli cart remove <product-id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		return a.cart.Remove(id)

	case "clear":
		return a.cart.Clear()

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	address := fs.String("address", "", "shipping address")
	method := fs.String("method", models.PaymentMethodCash, "payment method: CASH or CARD")
	cardNumber := fs.String("card-number", "", "card number")
	cardHolder := fs.String("card-holder", "", "card holder name")
	cardExpiry := fs.String("card-expiry", "", "card expiry, MM/YY")
	cardCVV := fs.String("card-cvv", "", "card CVV, 3 digits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.requireRole(nav.ScreenOrders); err != nil {
		return err
	}

	a.wizard.SetShippingAddress(*address)
	if err := a.wizard.SetPaymentMethod(*method); err != nil {
		return err
	}
	if *method == models.PaymentMethodCard {
		a.wizard.SetCardDetails(checkout.CardDetails{
			Number: *cardNumber,
			Holder: *cardHolder,
			Expiry: *cardExpiry,
			CVV:    *cardCVV,
		})
	}

	order, err := a.wizard.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %d placed, status %s, total %.2f\n", order.ID, order.Status, order.TotalAmount)
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	user, err := a.requireRole(nav.ScreenOrders)
	if err != nil {
		return err
	}

	var list []models.Order
	if user.Role == models.RoleAdmin || user.Role == models.RolePharmacist {
		list, err = a.orders.List(ctx)
	} else {
		list, err = a.orders.ListForUser(ctx, user.ID)
	}
	if err != nil {
		return err
	}

	for _, o := range list {
		fmt.Printf("%6d  %-12s %8.2f  %s  %s\n",
			o.ID, o.Status, o.TotalAmount, o.PaymentMethod, o.CreatedAt.Format(time.DateOnly))
	}
	return nil
}

func (a *app) cmdPrescriptions(ctx context.Context, args []string) error {
	user, err := a.requireRole(nav.ScreenPrescriptions)
	if err != nil {
		return err
	}

	var list []models.Prescription
	switch {
	case len(args) >= 1 && args[0] == "pending":
		list, err = a.rx.Pending(ctx)
	case user.Role == models.RoleAdmin || user.Role == models.RolePharmacist:
		list, err = a.rx.List(ctx)
	default:
		list, err = a.rx.ListForUser(ctx, user.ID)
	}
	if err != nil {
		return err
	}

	for _, rx := range list {
		fmt.Printf("%6d  %-10s dr=%s file=%s\n", rx.ID, rx.Status, rx.DoctorName, rx.FileName)
	}
	return nil
}

func (a *app) cmdSupport(ctx context.Context) error {
	user, err := a.requireRole(nav.ScreenSupport)
	if err != nil {
		return err
	}

	var list []models.SupportTicket
	if user.Role == models.RoleAdmin || user.Role == models.RolePharmacist {
		list, err = a.support.ListAll(ctx)
	} else {
		list, err = a.support.ListMine(ctx)
	}
	if err != nil {
		return err
	}

	for _, t := range list {
		fmt.Printf("%6d  %-12s %-8s %s\n", t.ID, t.Status, t.Priority, t.Subject)
	}
	return nil
}

// cmdChat follows one conversation, refreshing it the way the chat screen
// does, until interrupted.
func (a *app) cmdChat(ctx context.Context, args []string) error {
	user, err := a.requireRole(nav.ScreenChat)
	if err != nil {
		return err
	}

	var partnerID int64
	if len(args) >= 1 {
		if partnerID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
			return fmt.Errorf("invalid partner id %q", args[0])
		}
	} else if user.Role == models.RoleCustomer || user.Role == models.RoleUser {
		// Customers get routed to an on-duty pharmacist automatically.
		pharmacist, err := a.chat.Pharmacist(ctx)
		if err != nil {
			return fmt.Errorf("no pharmacist available: %w", err)
		}
		partnerID = pharmacist.ID
		fmt.Printf("connected to pharmacist %s\n", pharmacist.FullName)
	} else {
		conversations, err := a.chat.Conversations(ctx)
		if err != nil {
			return err
		}
		for _, conv := range conversations {
			fmt.Printf("%6d  %-30s %s\n", conv.ID, conv.FullName, conv.LastMessage)
		}
		return nil
	}

	var lastSeen int64
	poller := chat.NewPoller(a.chat.Conversation, func(_ int64, messages []models.ChatMessage) {
		for _, m := range messages {
			if m.ID <= lastSeen {
				continue
			}
			lastSeen = m.ID
			fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format(time.TimeOnly), m.SenderName, m.Message)
		}
	}, chat.DefaultInterval, a.log)

	poller.Select(partnerID)
	defer poller.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	user, err := a.requireRole(nav.ScreenNotifications)
	if err != nil {
		return err
	}

	var list []models.Notification
	if len(args) >= 1 && args[0] == "unread" {
		list, err = a.notifs.UnreadForUser(ctx, user.ID)
	} else {
		list, err = a.notifs.ListForUser(ctx, user.ID)
	}
	if err != nil {
		return err
	}

	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %6d  %s\n", marker, n.ID, n.Message)
	}
	return nil
}

func (a *app) cmdUsers(ctx context.Context) error {
	if _, err := a.requireRole(nav.ScreenUsers); err != nil {
		return err
	}

	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		fmt.Printf("%6d  %-30s %-30s %s\n", u.ID, u.FullName, u.Email, u.Role)
	}
	return nil
}

func (a *app) cmdDashboard(ctx context.Context) error {
	if _, err := a.requireRole(nav.ScreenDashboard); err != nil {
		return err
	}

	stats, err := a.stats.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("products: %d  orders: %d (pending %d)  users: %d\n",
		stats.TotalProducts, stats.TotalOrders, stats.PendingOrders, stats.TotalUsers)
	fmt.Printf("revenue: %.2f  low stock: %d  open tickets: %d\n",
		stats.TotalRevenue, stats.LowStockCount, stats.PendingTickets)
	return nil
}
