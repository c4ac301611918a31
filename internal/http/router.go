package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "travelapp/internal/config"
	h "travelapp/internal/http/handlers"
	"travelapp/internal/http/middleware"
	"travelapp/internal/utils"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	h.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.LogError("", "http", "router", "failed to set trusted proxies", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	authRequired := middleware.AuthRequired(hd.Auth)
	authOptional := middleware.AuthOptional(hd.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/signup", hd.Signup)
		auth.POST("/signin", hd.Signin)
		auth.GET("/me", authRequired, hd.Me)

		// Hotels
		hotels := api.Group("/hotels")
		hotels.GET("", hd.SearchHotels)
		hotels.GET("/:id", hd.GetHotel)

		// Hotel bookings and the caller's booking history
		hotelBooking := api.Group("/hotel-booking", authRequired)
		hotelBooking.GET("", hd.ListMyBookings)
		hotelBooking.POST("", hd.BookHotel)
		hotelBooking.POST("/calculate", hd.QuoteHotel)

		// Buses
		buses := api.Group("/buses")
		buses.GET("/search", hd.SearchBuses)
		buses.GET("/:busId/stops", hd.ListStops)
		buses.POST("/book", authRequired, hd.BookBus)

		// Trains
		trains := api.Group("/trains")
		trains.GET("/search", hd.SearchTrains)
		trains.POST("/book", authRequired, hd.BookTrain)
		trains.GET("/pnr/:pnr", hd.GetTrainBookingByPNR)
		trains.GET("/pnr/:pnr/e-ticket", authRequired, hd.GetTrainETicketPDF)

		// Cabs
		cabs := api.Group("/cabs")
		cabs.GET("", hd.ListCabTypes)
		cabs.POST("/book", authRequired, hd.BookCab)

		// Payments
		payment := api.Group("/payment")
		payment.POST("/orders", authOptional, hd.CreatePaymentOrder)
		payment.GET("/orders/:orderId", hd.GetPaymentOrder)
		payment.POST("/verify", hd.VerifyPayment)
		payment.POST("/webhook", hd.PaymentWebhook)
	}

	h.SetRouter(r)
	return r
}
