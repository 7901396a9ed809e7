package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/model"
)

// Mongo owns one client for the process lifetime. Payment confirmation uses a
// multi-document transaction, so the server must be a replica set.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Store = (*Mongo)(nil)

func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) coll(name string) *mongo.Collection { return m.db.Collection(name) }

// ----- Users -----

func (m *Mongo) UpsertUser(ctx context.Context, email string, fields UserFields) (UpdateResult, error) {
	set := bson.M{"email": email}
	if fields.Name != "" {
		set["name"] = fields.Name
	}
	if fields.PhotoURL != "" {
		set["photoURL"] = fields.PhotoURL
	}
	if fields.PasswordHash != "" {
		set["passwordHash"] = fields.PasswordHash
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"role": model.RoleCustomer},
	}
	res, err := m.coll(CollectionUsers).UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return UpdateResult{}, fmt.Errorf("upsert user: %w", err)
	}
	return fromUpdate(res), nil
}

func (m *Mongo) FindUser(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := m.coll(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return model.User{}, notFound(err, "find user")
	}
	return user, nil
}

func (m *Mongo) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := m.findAll(ctx, CollectionUsers, bson.M{}, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (m *Mongo) SetRole(ctx context.Context, email, role string) (UpdateResult, error) {
	res, err := m.coll(CollectionUsers).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("set role: %w", err)
	}
	return fromUpdate(res), nil
}

func (m *Mongo) Role(ctx context.Context, email string) (string, error) {
	var user model.User
	opts := options.FindOne().SetProjection(bson.M{"role": 1})
	if err := m.coll(CollectionUsers).FindOne(ctx, bson.M{"email": email}, opts).Decode(&user); err != nil {
		return "", notFound(err, "find role")
	}
	return user.Role, nil
}

// ----- Orders -----

func (m *Mongo) CreateOrder(ctx context.Context, o model.Order) (InsertResult, error) {
	o.ID = primitive.NewObjectID()
	o.Paid = false
	o.TransactionID = ""
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if _, err := m.coll(CollectionOrders).InsertOne(ctx, o); err != nil {
		return InsertResult{}, fmt.Errorf("insert order: %w", err)
	}
	return InsertResult{InsertedID: o.ID.Hex()}, nil
}

func (m *Mongo) ListOrdersByOwner(ctx context.Context, email string) ([]model.Order, error) {
	orders := []model.Order{}
	if err := m.findAll(ctx, CollectionOrders, bson.M{"customerEmail": email}, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (m *Mongo) GetOrder(ctx context.Context, id string) (model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Order{}, apperr.ErrNotFound
	}
	var order model.Order
	if err := m.coll(CollectionOrders).FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return model.Order{}, notFound(err, "find order")
	}
	return order, nil
}

// DeleteOrder removes an unpaid order. A paid order is left in place and
// reported as DeletedCount 0.
func (m *Mongo) DeleteOrder(ctx context.Context, id string) (DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return DeleteResult{}, nil
	}
	res, err := m.coll(CollectionOrders).DeleteOne(ctx, unpaid(oid))
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete order: %w", err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// PatchPaymentStatus marks an unpaid order as paid. An order that is already
// paid does not match, so its transactionId is never overwritten.
func (m *Mongo) PatchPaymentStatus(ctx context.Context, id, transactionID string) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UpdateResult{}, nil
	}
	return m.patchUnpaid(ctx, oid, transactionID)
}

func (m *Mongo) patchUnpaid(ctx context.Context, oid primitive.ObjectID, transactionID string) (UpdateResult, error) {
	res, err := m.coll(CollectionOrders).UpdateOne(ctx, unpaid(oid), markPaid(transactionID))
	if err != nil {
		return UpdateResult{}, fmt.Errorf("patch order: %w", err)
	}
	return fromUpdate(res), nil
}

// ----- Payments -----

func (m *Mongo) ConfirmPayment(ctx context.Context, p model.Payment) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(p.OrderID)
	if err != nil {
		return UpdateResult{}, apperr.ErrNotFound
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var order model.Order
		if err := m.coll(CollectionOrders).FindOne(sc, bson.M{"_id": oid}).Decode(&order); err != nil {
			return nil, notFound(err, "find order")
		}
		if order.Paid {
			if order.TransactionID == p.TransactionID {
				return UpdateResult{MatchedCount: 1}, nil
			}
			return nil, fmt.Errorf("%w: order %s already paid", apperr.ErrConflict, p.OrderID)
		}

		p.ID = primitive.NewObjectID()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		if _, err := m.coll(CollectionPayments).InsertOne(sc, p); err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}

		res, err := m.patchUnpaid(sc, oid, p.TransactionID)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, fmt.Errorf("%w: order %s paid concurrently", apperr.ErrConflict, p.OrderID)
		}
		return res, nil
	})
	if err != nil {
		return UpdateResult{}, err
	}
	return out.(UpdateResult), nil
}

func (m *Mongo) ListPayments(ctx context.Context, orderID string) ([]model.Payment, error) {
	payments := []model.Payment{}
	if err := m.findAll(ctx, CollectionPayments, bson.M{"orderId": orderID}, &payments); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// ----- Products -----

func (m *Mongo) ListProducts(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := m.findAll(ctx, CollectionProducts, bson.M{}, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (m *Mongo) GetProduct(ctx context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, apperr.ErrNotFound
	}
	var product model.Product
	if err := m.coll(CollectionProducts).FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		return model.Product{}, notFound(err, "find product")
	}
	return product, nil
}

func (m *Mongo) CreateProduct(ctx context.Context, p model.Product) (InsertResult, error) {
	p.ID = primitive.NewObjectID()
	if _, err := m.coll(CollectionProducts).InsertOne(ctx, p); err != nil {
		return InsertResult{}, fmt.Errorf("insert product: %w", err)
	}
	return InsertResult{InsertedID: p.ID.Hex()}, nil
}

func (m *Mongo) UpdateStock(ctx context.Context, id string, stock int) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UpdateResult{}, nil
	}
	res, err := m.coll(CollectionProducts).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"stock": stock}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update stock: %w", err)
	}
	return fromUpdate(res), nil
}

func (m *Mongo) DeleteProduct(ctx context.Context, id string) (DeleteResult, error) {
	return m.deleteByID(ctx, CollectionProducts, id)
}

// ----- Reviews -----

func (m *Mongo) ListReviews(ctx context.Context) ([]model.Review, error) {
	reviews := []model.Review{}
	if err := m.findAll(ctx, CollectionReviews, bson.M{}, &reviews); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (m *Mongo) CreateReview(ctx context.Context, r model.Review) (InsertResult, error) {
	r.ID = primitive.NewObjectID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := m.coll(CollectionReviews).InsertOne(ctx, r); err != nil {
		return InsertResult{}, fmt.Errorf("insert review: %w", err)
	}
	return InsertResult{InsertedID: r.ID.Hex()}, nil
}

// ----- Profiles -----

func (m *Mongo) UpsertProfile(ctx context.Context, p model.UserProfile) (UpdateResult, error) {
	set := bson.M{"email": p.Email}
	for k, v := range map[string]string{
		"education": p.Education,
		"location":  p.Location,
		"phone":     p.Phone,
		"linkedin":  p.LinkedIn,
	} {
		if v != "" {
			set[k] = v
		}
	}
	res, err := m.coll(CollectionUserProfiles).UpdateOne(ctx,
		bson.M{"email": p.Email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("upsert profile: %w", err)
	}
	return fromUpdate(res), nil
}

func (m *Mongo) GetProfile(ctx context.Context, email string) (model.UserProfile, error) {
	var profile model.UserProfile
	if err := m.coll(CollectionUserProfiles).FindOne(ctx, bson.M{"email": email}).Decode(&profile); err != nil {
		return model.UserProfile{}, notFound(err, "find profile")
	}
	return profile, nil
}

// ----- helpers -----

func (m *Mongo) findAll(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	cur, err := m.coll(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (m *Mongo) deleteByID(ctx context.Context, collection, id string) (DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return DeleteResult{}, nil
	}
	res, err := m.coll(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func unpaid(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid, "paid": bson.M{"$ne": true}}
}

func markPaid(transactionID string) bson.M {
	return bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
}

func fromUpdate(res *mongo.UpdateResult) UpdateResult {
	out := UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
