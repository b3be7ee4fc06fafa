package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type DashboardSummary struct {
	RevenueToday      int64 `json:"revenueToday"`
	AppointmentsToday int   `json:"appointmentsToday"`
	PendingPayments   int64 `json:"pendingPayments"`
	StaffOnDuty       int   `json:"staffOnDuty"`
	TotalCustomers    int   `json:"totalCustomers"`
	LowStockItems     int   `json:"lowStockItems"`
}

// GetDashboard aggregates the day's numbers from the local cache; nothing
// here touches the remote store.
func (ct *Controller) GetDashboard(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	today := utils.Today()
	var summary DashboardSummary

	invoices, err := ct.Cache.Invoices(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	for _, inv := range invoices {
		if inv.Date == today {
			summary.RevenueToday += inv.Total
		}
		if inv.Method == models.PayPending {
			summary.PendingPayments += inv.Total
		}
	}

	appts, err := ct.Cache.Appointments(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	for _, a := range appts {
		if a.Date == today && a.Status != models.ApptCancelled {
			summary.AppointmentsToday++
		}
	}

	staff, err := ct.Cache.Staff(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load staff")
		return
	}
	for _, m := range staff {
		if m.AttendanceToday {
			summary.StaffOnDuty++
		}
	}

	customers, err := ct.Cache.Customers(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	summary.TotalCustomers = len(customers)

	inventory, err := ct.Cache.Inventory(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load inventory")
		return
	}
	for _, item := range inventory {
		if item.Stock <= item.MinStockAlert {
			summary.LowStockItems++
		}
	}

	c.JSON(http.StatusOK, summary)
}
