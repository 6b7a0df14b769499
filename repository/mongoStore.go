package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel-service/domain"
)

// MongoStore persists rooms and reservations in two MongoDB collections.
// Writes go through a circuit breaker so repeated persistence failures
// are visible to an operator instead of silently piling up.
type MongoStore struct {
	rooms          *mongo.Collection
	reservations   *mongo.Collection
	logger         *logrus.Logger
	circuitBreaker *gobreaker.CircuitBreaker
}

func NewMongoStore(client *mongo.Client, logger *logrus.Logger) *MongoStore {
	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "MongoSave",
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			fmt.Printf("Circuit Breaker state changed from %s to %s\n", from, to)
		},
	})

	return &MongoStore{
		rooms:          client.Database("hotel").Collection("rooms"),
		reservations:   client.Database("hotel").Collection("reservations"),
		logger:         logger,
		circuitBreaker: circuitBreaker,
	}
}

func (ms *MongoStore) Load(ctx context.Context) (domain.Rooms, map[string]*domain.Reservation, error) {
	rooms := domain.Rooms{}
	reservations := map[string]*domain.Reservation{}

	cursor, err := ms.rooms.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"room_number": 1}))
	if err != nil {
		ms.logger.WithFields(logrus.Fields{"path": "repository/mongoStore"}).Error("Error loading rooms, starting fresh: ", err)
		return rooms, reservations, nil
	}
	if err = cursor.All(ctx, &rooms); err != nil {
		ms.logger.WithFields(logrus.Fields{"path": "repository/mongoStore"}).Error("Error decoding rooms, starting fresh: ", err)
		return domain.Rooms{}, reservations, nil
	}

	cursor, err = ms.reservations.Find(ctx, bson.M{})
	if err != nil {
		ms.logger.WithFields(logrus.Fields{"path": "repository/mongoStore"}).Error("Error loading reservations, starting fresh: ", err)
		return rooms, reservations, nil
	}
	var all domain.Reservations
	if err = cursor.All(ctx, &all); err != nil {
		ms.logger.WithFields(logrus.Fields{"path": "repository/mongoStore"}).Error("Error decoding reservations, starting fresh: ", err)
		return rooms, map[string]*domain.Reservation{}, nil
	}
	for _, reservation := range all {
		reservations[reservation.ReservationId] = reservation
	}

	return rooms, reservations, nil
}

func (ms *MongoStore) Save(ctx context.Context, rooms domain.Rooms, reservations map[string]*domain.Reservation) error {
	_, err := ms.circuitBreaker.Execute(func() (interface{}, error) {
		opts := options.Replace().SetUpsert(true)
		for _, room := range rooms {
			filter := bson.M{"room_number": room.RoomNumber}
			if _, err := ms.rooms.ReplaceOne(ctx, filter, room, opts); err != nil {
				return nil, err
			}
		}
		for _, reservation := range reservations {
			filter := bson.M{"_id": reservation.ReservationId}
			if _, err := ms.reservations.ReplaceOne(ctx, filter, reservation, opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		ms.logger.WithFields(logrus.Fields{"path": "repository/mongoStore"}).Error("Error saving data: ", err)
		return err
	}
	return nil
}
