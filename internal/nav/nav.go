// Package nav is the role-gated navigation policy: a static table of the
// roles allowed to open each screen. The presentation layer filters its
// menu with it and refuses navigation past it.
package nav

import "github.com/deltapharm/pharmacy-client-golang/internal/models"

type Screen string

const (
	ScreenDashboard     Screen = "dashboard"
	ScreenProducts      Screen = "products"
	ScreenOrders        Screen = "orders"
	ScreenPrescriptions Screen = "prescriptions"
	ScreenSupport       Screen = "support"
	ScreenChat          Screen = "chat"
	ScreenNotifications Screen = "notifications"
	ScreenAnalytics     Screen = "analytics"
	ScreenUsers         Screen = "users"
)

var allRoles = []string{models.RoleAdmin, models.RolePharmacist, models.RoleCustomer, models.RoleUser}

// menuOrder is the order screens appear in the menu.
var menuOrder = []Screen{
	ScreenDashboard,
	ScreenProducts,
	ScreenOrders,
	ScreenPrescriptions,
	ScreenSupport,
	ScreenChat,
	ScreenNotifications,
	ScreenAnalytics,
	ScreenUsers,
}

var screenRoles = map[Screen][]string{
	ScreenDashboard:     allRoles,
	ScreenProducts:      allRoles,
	ScreenOrders:        allRoles,
	ScreenPrescriptions: allRoles,
	ScreenSupport:       allRoles,
	ScreenChat:          allRoles,
	ScreenNotifications: allRoles,
	ScreenAnalytics:     {models.RoleAdmin, models.RolePharmacist},
	ScreenUsers:         {models.RoleAdmin},
}

// CanAccess reports whether the role may open the screen. Unknown screens
// are denied.
func CanAccess(role string, screen Screen) bool {
	for _, allowed := range screenRoles[screen] {
		if allowed == role {
			return true
		}
	}
	return false
}

// MenuFor returns the screens the role may see, in menu order.
func MenuFor(role string) []Screen {
	var visible []Screen
	for _, screen := range menuOrder {
		if CanAccess(role, screen) {
			visible = append(visible, screen)
		}
	}
	return visible
}
