package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
)

const collectionClaims = "claims"

type ClaimRepository struct {
	col *mongo.Collection
}

// claimDoc pairs the generated ObjectID with the domain claim. The
// domain struct keeps its id out of bson so the hex form lives only on
// the domain side.
type claimDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Claim domain.Claim       `bson:",inline"`
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{col: db.Collection(collectionClaims)}
}

// Create inserts a new claim document and backfills the generated id.
func (r *ClaimRepository) Create(ctx context.Context, c *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

// FindByID retrieves a claim by id, always filtered by tenant. A claim
// belonging to another tenant is reported as not found.
func (r *ClaimRepository) FindByID(ctx context.Context, id, tenantID string) (*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClaimNotFound
	}

	var doc claimDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}
	claim := doc.Claim
	claim.ID = doc.ID.Hex()
	return &claim, nil
}

// List returns a page of claims matching filter and the total count.
func (r *ClaimRepository) List(ctx context.Context, filter ports.ListClaimsFilter) ([]*domain.Claim, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"tenant_id": filter.TenantID}
	if filter.ClaimantUserID != "" {
		query["claimant_user_id"] = filter.ClaimantUserID
	}
	if filter.AssignedAgentID != "" {
		query["assigned_agent_id"] = filter.AssignedAgentID
	}
	if filter.AssignedStaffID != "" {
		query["assigned_staff_id"] = filter.AssignedStaffID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"company_name": regex},
		}
	}
	created := bson.M{}
	if !filter.DateFrom.IsZero() {
		created["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		created["$lte"] = filter.DateTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	limit := int64(filter.Limit)
	skip := int64(filter.Page-1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var claims []*domain.Claim
	for cur.Next(ctx) {
		var doc claimDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		claim := doc.Claim
		claim.ID = doc.ID.Hex()
		claims = append(claims, &claim)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// UpdateStatus sets the claim status and appends a history entry. The
// filter matches on (id, tenant, version) so a concurrent writer that
// bumped the version first causes this update to miss and report
// domain.ErrConflict.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id, tenantID string, version int64, status domain.ClaimStatus, actorID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClaimNotFound
	}

	historyEntry := bson.M{
		"status":    string(status),
		"actor_id":  actorID,
		"timestamp": at.UTC(),
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "tenant_id": tenantID, "version": version},
		bson.M{
			"$set":  bson.M{"status": string(status), "updated_at": at.UTC()},
			"$inc":  bson.M{"version": 1},
			"$push": bson.M{"status_history": historyEntry},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdateAssignee sets or clears the staff assignee with the same
// compare-and-swap contract as UpdateStatus.
func (r *ClaimRepository) UpdateAssignee(ctx context.Context, id, tenantID string, version int64, staffID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClaimNotFound
	}

	update := bson.M{
		"$set": bson.M{"updated_at": at.UTC()},
		"$inc": bson.M{"version": 1},
	}
	if staffID == "" {
		update["$unset"] = bson.M{"assigned_staff_id": ""}
	} else {
		update["$set"].(bson.M)["assigned_staff_id"] = staffID
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "tenant_id": tenantID, "version": version},
		update,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

// EnsureIndexes creates the indexes backing tenant-scoped queries.
func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "claimant_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "assigned_staff_id", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "assigned_agent_id", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
