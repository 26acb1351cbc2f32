package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placement-portal/experience-service/internal/domain"
)

// Collection names.
const (
	usersCollection       = "users"
	experiencesCollection = "experiences"
	discussionsCollection = "discussions"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

// NewMongoStore returns repositories backed by a MongoDB database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:       &mongoUserRepository{coll: db.Collection(usersCollection)},
		Experiences: &mongoExperienceRepository{coll: db.Collection(experiencesCollection)},
		Discussions: &mongoDiscussionRepository{coll: db.Collection(discussionsCollection)},
		Health:      mongoPinger{client: db.Client()},
	}
}

// EnsureMongoIndexes creates the indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(experiencesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: newestFirst,
	}); err != nil {
		return err
	}
	_, err := db.Collection(discussionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "company", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func mongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(domain.NormalizeID(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	Name           string             `bson:"name"`
	Department     string             `bson:"department,omitempty"`
	GraduationYear *int               `bson:"graduationYear,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	IsVerified     bool               `bson:"isVerified"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		PasswordHash:   d.Password,
		Name:           d.Name,
		Department:     d.Department,
		GraduationYear: d.GraduationYear,
		ProfilePicture: d.ProfilePicture,
		IsVerified:     d.IsVerified,
		CreatedAt:      d.CreatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		ID:             primitive.NewObjectID(),
		Email:          user.Email,
		Password:       user.PasswordHash,
		Name:           user.Name,
		Department:     user.Department,
		GraduationYear: user.GraduationYear,
		ProfilePicture: user.ProfilePicture,
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toDomain(), nil
}

type experienceDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	UserID              primitive.ObjectID `bson:"userId"`
	StudentName         string             `bson:"studentName,omitempty"`
	Company             string             `bson:"company,omitempty"`
	Role                string             `bson:"role,omitempty"`
	Package             *float64           `bson:"package,omitempty"`
	Type                string             `bson:"type,omitempty"`
	Department          string             `bson:"department,omitempty"`
	CGPA                *float64           `bson:"cgpa,omitempty"`
	CGPAMatters         *bool              `bson:"cgpaMatters,omitempty"`
	Rounds              *int               `bson:"rounds,omitempty"`
	Questions           []string           `bson:"questions"`
	QuestionTags        []string           `bson:"questionTags"`
	PreparationDuration string             `bson:"preparationDuration,omitempty"`
	Resources           []string           `bson:"resources"`
	Timeline            string             `bson:"timeline,omitempty"`
	DifficultyRating    *int               `bson:"difficultyRating,omitempty"`
	WouldRecommend      *bool              `bson:"wouldRecommend,omitempty"`
	GotSelected         *bool              `bson:"gotSelected,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
}

func (d experienceDocument) toDomain() domain.Experience {
	return domain.Experience{
		ID:                  d.ID.Hex(),
		UserID:              d.UserID.Hex(),
		StudentName:         d.StudentName,
		Company:             d.Company,
		Role:                d.Role,
		Package:             d.Package,
		Type:                domain.ExperienceType(d.Type),
		Department:          d.Department,
		CGPA:                d.CGPA,
		CGPAMatters:         d.CGPAMatters,
		Rounds:              d.Rounds,
		Questions:           d.Questions,
		QuestionTags:        d.QuestionTags,
		PreparationDuration: d.PreparationDuration,
		Resources:           d.Resources,
		Timeline:            d.Timeline,
		DifficultyRating:    d.DifficultyRating,
		WouldRecommend:      d.WouldRecommend,
		GotSelected:         d.GotSelected,
		CreatedAt:           d.CreatedAt,
	}
}

type mongoExperienceRepository struct {
	coll *mongo.Collection
}

func (r *mongoExperienceRepository) Create(ctx context.Context, exp *domain.Experience) error {
	owner, ok := objectID(exp.UserID)
	if !ok {
		return errors.New("invalid owner id")
	}
	doc := experienceDocument{
		ID:                  primitive.NewObjectID(),
		UserID:              owner,
		StudentName:         exp.StudentName,
		Company:             exp.Company,
		Role:                exp.Role,
		Package:             exp.Package,
		Type:                string(exp.Type),
		Department:          exp.Department,
		CGPA:                exp.CGPA,
		CGPAMatters:         exp.CGPAMatters,
		Rounds:              exp.Rounds,
		Questions:           exp.Questions,
		QuestionTags:        exp.QuestionTags,
		PreparationDuration: exp.PreparationDuration,
		Resources:           exp.Resources,
		Timeline:            exp.Timeline,
		DifficultyRating:    exp.DifficultyRating,
		WouldRecommend:      exp.WouldRecommend,
		GotSelected:         exp.GotSelected,
		CreatedAt:           exp.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	exp.ID = doc.ID.Hex()
	return nil
}

func (r *mongoExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc experienceDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	exp := doc.toDomain()
	return &exp, nil
}

func (r *mongoExperienceRepository) List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, error) {
	query, ok := experienceQuery(filter)
	if !ok {
		return []domain.Experience{}, nil
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	var docs []experienceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]domain.Experience, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

func (r *mongoExperienceRepository) Update(ctx context.Context, id string, patch ExperiencePatch) (*domain.Experience, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	set := experienceSet(patch)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	var doc experienceDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mongoErr(err)
	}
	exp := doc.toDomain()
	return &exp, nil
}

func (r *mongoExperienceRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// experienceQuery renders the filter as a Mongo query document. ok is false
// when the filter cannot match any document.
func experienceQuery(filter ExperienceFilter) (bson.M, bool) {
	query := bson.M{}
	if filter.UserID != nil {
		owner, valid := objectID(*filter.UserID)
		if !valid {
			return nil, false
		}
		query["userId"] = owner
	}
	if filter.Company != nil {
		query["company"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Company), Options: "i"}
	}
	if filter.Department != nil {
		query["department"] = *filter.Department
	}
	if filter.Type != nil {
		query["type"] = string(*filter.Type)
	}
	if filter.MinPackage != nil || filter.MaxPackage != nil {
		bounds := bson.M{"$type": "number"}
		if filter.MinPackage != nil {
			bounds["$gte"] = *filter.MinPackage
		}
		if filter.MaxPackage != nil {
			bounds["$lte"] = *filter.MaxPackage
		}
		query["package"] = bounds
	}
	if filter.Selected != nil {
		query["gotSelected"] = *filter.Selected
	}
	return query, true
}

func experienceSet(p ExperiencePatch) bson.M {
	set := bson.M{}
	if p.StudentName != nil {
		set["studentName"] = *p.StudentName
	}
	if p.Company != nil {
		set["company"] = *p.Company
	}
	if p.Role != nil {
		set["role"] = *p.Role
	}
	if p.Package != nil {
		set["package"] = *p.Package
	}
	if p.Type != nil {
		set["type"] = string(*p.Type)
	}
	if p.Department != nil {
		set["department"] = *p.Department
	}
	if p.CGPA != nil {
		set["cgpa"] = *p.CGPA
	}
	if p.CGPAMatters != nil {
		set["cgpaMatters"] = *p.CGPAMatters
	}
	if p.Rounds != nil {
		set["rounds"] = *p.Rounds
	}
	if p.Questions != nil {
		set["questions"] = *p.Questions
	}
	if p.QuestionTags != nil {
		set["questionTags"] = *p.QuestionTags
	}
	if p.PreparationDuration != nil {
		set["preparationDuration"] = *p.PreparationDuration
	}
	if p.Resources != nil {
		set["resources"] = *p.Resources
	}
	if p.Timeline != nil {
		set["timeline"] = *p.Timeline
	}
	if p.DifficultyRating != nil {
		set["difficultyRating"] = *p.DifficultyRating
	}
	if p.WouldRecommend != nil {
		set["wouldRecommend"] = *p.WouldRecommend
	}
	if p.GotSelected != nil {
		set["gotSelected"] = *p.GotSelected
	}
	return set
}

type discussionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Company   string             `bson:"company"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d discussionDocument) toDomain() domain.Discussion {
	return domain.Discussion{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Company:   d.Company,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

type mongoDiscussionRepository struct {
	coll *mongo.Collection
}

func (r *mongoDiscussionRepository) Create(ctx context.Context, d *domain.Discussion) error {
	owner, ok := objectID(d.UserID)
	if !ok {
		return errors.New("invalid owner id")
	}
	doc := discussionDocument{
		ID:        primitive.NewObjectID(),
		UserID:    owner,
		Company:   d.Company,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	d.ID = doc.ID.Hex()
	return nil
}

func (r *mongoDiscussionRepository) GetByID(ctx context.Context, id string) (*domain.Discussion, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc discussionDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	d := doc.toDomain()
	return &d, nil
}

func (r *mongoDiscussionRepository) ListByCompany(ctx context.Context, company string) ([]domain.Discussion, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"company": company}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	var docs []discussionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]domain.Discussion, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

func (r *mongoDiscussionRepository) UpdateMessage(ctx context.Context, id, message string) (*domain.Discussion, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc discussionDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"message": message}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mongoErr(err)
	}
	d := doc.toDomain()
	return &d, nil
}

func (r *mongoDiscussionRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
