package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"parcelpro/internal/auth"
	"parcelpro/internal/config"
	"parcelpro/internal/database"
	"parcelpro/internal/gateway"
	"parcelpro/internal/handlers"
	"parcelpro/internal/middleware"
	"parcelpro/internal/models"
	"parcelpro/internal/reports"
	"parcelpro/internal/store"
	"parcelpro/internal/token"
	"parcelpro/internal/workflow"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureParcelIndexes(db); err != nil {
		log.Printf("parcel index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}

	st := store.New(db)
	tokens := token.NewService(config.AppEnv.JWTSecret, config.AppEnv.TokenTTL)
	policy := auth.NewPolicy(st.Users())
	booking := workflow.NewBooking(st.Parcels(), st.Users())
	engine := reports.NewEngine(db)
	intents := gateway.NewPaymentIntents(config.AppEnv.StripeSecretKey)

	r := gin.Default()

	r.GET("/", handlers.Home())
	r.POST("/jwt", handlers.IssueToken(tokens))
	r.POST("/users", handlers.CreateUser(st.Users()))
	r.GET("/home/stats", handlers.HomeStats(engine))
	r.GET("/top-deliveryMen", handlers.TopDeliveryMen(engine))
	r.POST("/payment-Intent", handlers.CreatePaymentIntent(st.Parcels(), intents))

	authed := r.Group("/")
	authed.Use(middleware.TokenAuth(tokens))
	{
		authed.GET("/users/role/:email", handlers.GetUserRole(st.Users()))

		authed.POST("/parcels", handlers.BookParcel(booking))
		authed.GET("/parcels", handlers.ListParcels(st.Parcels(), policy))
		authed.GET("/parcels/:id", handlers.GetParcel(st.Parcels()))
		authed.PUT("/parcels/:id", handlers.UpdateParcel(booking))
		authed.DELETE("/parcels/:id", handlers.DeleteParcel(booking))
		authed.PATCH("/parcels-paid/:id", handlers.MarkParcelPaid(booking))

		authed.POST("/reviews", handlers.CreateReview(st.Reviews()))

		authed.POST("/payments", handlers.RecordPayment(st.Payments()))
		authed.GET("/payments/:email", handlers.ListPayments(st.Payments(), policy))
	}

	admin := r.Group("/")
	admin.Use(middleware.TokenAuth(tokens), middleware.RequireRole(policy, models.RoleAdmin))
	{
		admin.GET("/users/admin", handlers.ListUserSummaries(engine))
		admin.PATCH("/users/role", handlers.UpdateUserRole(st.Users()))
		admin.GET("/users/deliveryMen", handlers.ListDeliveryMen(engine))
		admin.GET("/parcels/admin", handlers.ListAllParcels(st.Parcels()))
		admin.PATCH("/parcels/assign", handlers.AssignParcel(booking))
		admin.GET("/admin/stats", handlers.AdminStats(engine))
	}

	deliveryMen := r.Group("/")
	deliveryMen.Use(middleware.TokenAuth(tokens), middleware.RequireRole(policy, models.RoleDeliveryMen))
	{
		deliveryMen.GET("/deliveries/:id", handlers.ListDeliveries(st.Parcels()))
		deliveryMen.PATCH("/deliveries", handlers.UpdateDeliveryStatus(booking))
		deliveryMen.PATCH("/deliveryman", handlers.UpdateDeliveryMan(st.Users()))
		deliveryMen.GET("/reviews/:id", handlers.ListReviews(st.Reviews()))
	}

	r.Run(":" + config.AppEnv.Port)
}
