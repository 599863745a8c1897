package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"romi-backend/controllers"
	"romi-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	mc *controllers.MenuController,
	oc *controllers.OrderController,
	ic *controllers.InvoiceController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	admin := middleware.RequireAdmin()
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.GET("/me", admin, controllers.Me)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			// static path must precede /:id
			rooms.GET("/availability", rc.CheckAvailability)
			rooms.GET("/:id", rc.GetRoomByID)

			rooms.POST("", admin, rc.CreateRoom)
			rooms.PUT("/:id", admin, rc.UpdateRoom)
			rooms.PATCH("/:id", admin, rc.UpdateRoom)
			rooms.DELETE("/:id", admin, rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/phone/:phone", bc.GetBookingsByPhone)

			bookings.GET("", admin, bc.GetBookings)
			bookings.GET("/:id", admin, bc.GetBookingByID)
			bookings.PUT("/:id/status", admin, bc.UpdateBookingStatus)
			bookings.PUT("/:id", admin, bc.UpdateBooking)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", mc.GetMenuItems)
			menu.POST("", admin, mc.CreateMenuItem)
			menu.PUT("/:id", admin, mc.UpdateMenuItem)
			menu.DELETE("/:id", admin, mc.DeleteMenuItem)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", oc.CreateOrder)
			orders.GET("/phone/:phone", oc.GetOrdersByPhone)

			orders.GET("", admin, oc.GetOrders)
			orders.PUT("/:id/status", admin, oc.UpdateOrderStatus)
		}

		invoices := api.Group("/invoices")
		invoices.Use(admin)
		{
			invoices.GET("", ic.GetInvoices)
			invoices.GET("/:id", ic.GetInvoiceByID)
			invoices.POST("/room", ic.CreateRoomInvoice)
			invoices.POST("/restaurant", ic.CreateRestaurantBill)
			invoices.PUT("/:id/pay", ic.MarkInvoicePaid)
			invoices.PUT("/:id", ic.UpdateInvoice)
		}

		settings := api.Group("/settings")
		settings.Use(admin)
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}
	}

	return r
}
