// Package reports implements the read-only aggregation pipelines
// behind the admin and landing-page analytics endpoints. All results
// are computed over the current collection contents; nothing is
// maintained incrementally.
package reports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"parcelpro/internal/models"
)

// Daily buckets group on the booking creation day in the platform's
// fixed display time zone.
const (
	statsDateFormat   = "%d-%m-%Y"
	statsDateTimezone = "+06:00"
)

// Engine runs the reporting pipelines against the database.
type Engine struct {
	db *mongo.Database
}

func NewEngine(db *mongo.Database) *Engine {
	return &Engine{db: db}
}

// UserSummary is one row of the admin user listing: the account plus
// how many parcels it booked and what they cost in total.
type UserSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role        models.Role        `bson:"role" json:"role"`
	ParcelCount int64              `bson:"parcelCount" json:"parcelCount"`
	TotalSpent  float64            `bson:"totalSpent" json:"totalSpent"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserSummaries returns one page of user summaries ordered by account
// creation time descending. Pagination happens before the parcel join
// so the window stays stable for a given data set.
func (e *Engine) UserSummaries(ctx context.Context, page, limit int64) ([]UserSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "parcels",
			"localField":   "email",
			"foreignField": "senderEmail",
			"as":           "parcels",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"parcelCount": bson.M{"$size": "$parcels"},
			"totalSpent":  bson.M{"$sum": "$parcels.price"},
		}}},
		{{Key: "$project", Value: bson.M{"parcels": 0}}},
	}

	cursor, err := e.db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := make([]UserSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeliveryManProfile is a delivery man annotated with his review
// average. AverageRating is nil when no reviews exist; $avg over an
// empty array yields null rather than a divide-by-zero fault.
type DeliveryManProfile struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	DeliveredCount int64              `bson:"deliveredCount" json:"deliveredCount"`
	ReviewCount    int64              `bson:"reviewCount" json:"reviewCount"`
	AverageRating  *float64           `bson:"averageRating" json:"averageRating"`
}

func deliveryMenPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleDeliveryMen}}},
		{{Key: "$addFields", Value: bson.M{"idStr": bson.M{"$toString": "$_id"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "idStr",
			"foreignField": "deliveryMenId",
			"as":           "reviews",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"reviewCount":   bson.M{"$size": "$reviews"},
			"averageRating": bson.M{"$avg": "$reviews.rating"},
		}}},
		{{Key: "$project", Value: bson.M{"reviews": 0, "idStr": 0}}},
	}
}

// DeliveryMenProfiles lists every delivery man with delivered count and
// average rating.
func (e *Engine) DeliveryMenProfiles(ctx context.Context) ([]DeliveryManProfile, error) {
	return e.runDeliveryMen(ctx, deliveryMenPipeline())
}

// TopDeliveryMen returns the three delivery men with the highest
// delivered counts for the public landing page. Ties break by _id
// ascending, which matches insertion order for generated ids.
func (e *Engine) TopDeliveryMen(ctx context.Context) ([]DeliveryManProfile, error) {
	pipeline := append(deliveryMenPipeline(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "deliveredCount", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$limit", Value: 3}},
	)
	return e.runDeliveryMen(ctx, pipeline)
}

func (e *Engine) runDeliveryMen(ctx context.Context, pipeline mongo.Pipeline) ([]DeliveryManProfile, error) {
	cursor, err := e.db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := make([]DeliveryManProfile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DayCount is one calendar-day bucket of booking activity.
type DayCount struct {
	Date      string `bson:"_id" json:"date"`
	Booked    int64  `bson:"booked" json:"booked"`
	Delivered int64  `bson:"delivered" json:"delivered"`
}

// PlatformStats is the admin dashboard payload.
type PlatformStats struct {
	TotalParcels   int64      `json:"totalParcels"`
	TotalUsers     int64      `json:"totalUsers"`
	TotalDelivered int64      `json:"totalDelivered"`
	TotalRevenue   float64    `json:"totalRevenue"`
	BookingsByDay  []DayCount `json:"bookingsByDay"`
}

// HomeStats is the public landing-page counter payload.
type HomeStats struct {
	TotalParcels   int64 `json:"totalParcels"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalDelivered int64 `json:"totalDelivered"`
}

// PlatformStatsReport computes totals, revenue and the per-day
// booked-vs-delivered buckets sorted ascending by date string.
func (e *Engine) PlatformStatsReport(ctx context.Context) (*PlatformStats, error) {
	totalParcels, err := e.db.Collection("parcels").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalUsers, err := e.db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalDelivered, err := e.db.Collection("parcels").CountDocuments(ctx, bson.M{"bookingStatus": models.StatusDelivered})
	if err != nil {
		return nil, err
	}

	revenue, err := e.totalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	byDay, err := e.bookingsByDay(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalParcels:   totalParcels,
		TotalUsers:     totalUsers,
		TotalDelivered: totalDelivered,
		TotalRevenue:   revenue,
		BookingsByDay:  byDay,
	}, nil
}

// HomeStatsReport computes the public landing-page counters.
func (e *Engine) HomeStatsReport(ctx context.Context) (*HomeStats, error) {
	totalParcels, err := e.db.Collection("parcels").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalUsers, err := e.db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalDelivered, err := e.db.Collection("parcels").CountDocuments(ctx, bson.M{"bookingStatus": models.StatusDelivered})
	if err != nil {
		return nil, err
	}

	return &HomeStats{
		TotalParcels:   totalParcels,
		TotalUsers:     totalUsers,
		TotalDelivered: totalDelivered,
	}, nil
}

func (e *Engine) bookingsByDay(ctx context.Context) ([]DayCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   statsDateFormat,
				"date":     "$createdAt",
				"timezone": statsDateTimezone,
			}},
			"booked": bson.M{"$sum": 1},
			"delivered": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$bookingStatus", models.StatusDelivered}},
				1,
				0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := e.db.Collection("parcels").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := make([]DayCount, 0)
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (e *Engine) totalRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := e.db.Collection("payments").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	rows := make([]revenueRow, 0, 1)
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	return revenueTotal(rows), nil
}
