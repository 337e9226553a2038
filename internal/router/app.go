package router

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/middleware"
)

// App is the whole menu tree.
type App struct {
	main     *Menu
	admin    *Menu
	customer *Menu
}

// New wires the main, admin and customer menus.
func New(admin *handler.AdminHandler, customer *handler.CustomerHandler, log *zap.Logger) *App {
	if admin == nil || customer == nil {
		panic("nil handler passed to router.New")
	}
	a := &App{
		main:     NewMenu("Welcome to the Event Reservation System", log),
		admin:    NewMenu("Admin Menu", log),
		customer: NewMenu("User Menu", log),
	}

	a.admin.Use(middleware.RequireRole(handler.RoleAdmin))
	a.admin.Add("Create Event", "create_event", admin.CreateEvent)
	a.admin.Add("View Events", "list_events", admin.ListEvents)
	a.admin.Add("Ticket Sales Report", "sales_report", admin.SalesReport)
	a.admin.Add("Logout", "admin_logout", admin.Logout)

	a.customer.Use(middleware.RequireRole(handler.RoleCustomer))
	a.customer.Add("View My Tickets", "view_tickets", customer.ViewMyTickets)
	a.customer.Add("Reserve Ticket", "reserve_ticket", customer.Reserve)
	a.customer.Add("Cancel Reservation", "cancel_reservation", customer.Cancel)
	a.customer.Add("Confirm Reservation", "confirm_reservation", customer.Confirm)
	a.customer.Add("View Events", "list_events", customer.ListEvents)
	a.customer.Add("Switch User", "switch_user", customer.SwitchUser)
	a.customer.Add("Exit", "exit", customer.Exit)

	a.main.Add("Admin Login", "admin_login", a.enter(admin.Login, handler.RoleAdmin, a.admin))
	a.main.Add("User Login", "user_login", a.enter(customer.Login, handler.RoleCustomer, a.customer))
	a.main.Add("Exit", "exit", func(s *handler.Session) error {
		s.Println("Exiting the system. Goodbye!")
		return handler.ErrExit
	})
	return a
}

// enter runs login and, when it grants role, the menu for that role.
func (a *App) enter(login handler.Action, role handler.Role, menu *Menu) handler.Action {
	return func(s *handler.Session) error {
		if err := login(s); err != nil {
			return err
		}
		if s.Role != role {
			return nil
		}
		return menu.Run(s)
	}
}

// Run drives the main menu until the user exits or input ends.
func (a *App) Run(s *handler.Session) error {
	err := a.main.Run(s)
	if errors.Is(err, handler.ErrExit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
