package mongodb

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	TasksCollection = "tasks"
	UsersCollection = "users"
)

// taskDocument is the stored shape of a task.
type taskDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      string              `bson:"status"`
	Completed   bool                `bson:"completed"`
	DueDate     *time.Time          `bson:"dueDate,omitempty"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

// userDocument is the stored shape of a user.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// parseObjectID converts a hex ID into an ObjectID, reporting malformed input
// as a domain validation error.
func parseObjectID(entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewValidationError("", "Please provide a valid "+entity+" ID", domain.ErrInvalidID)
	}
	return oid, nil
}

func newTaskDocument(task *domain.Task) (*taskDocument, error) {
	doc := &taskDocument{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if assignee := task.AssigneeID(); assignee != "" {
		oid, err := parseObjectID("user", assignee)
		if err != nil {
			return nil, err
		}
		doc.AssignedTo = &oid
	}

	return doc, nil
}

// toDomain converts the document, leaving the assignee unresolved.
func (d *taskDocument) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		Completed:   d.Completed,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.AssignedTo != nil {
		task.AssignedTo = &domain.UserRef{ID: d.AssignedTo.Hex()}
	}
	return task
}

func newUserDocument(user *domain.User) *userDocument {
	return &userDocument{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// buildTaskUpdate translates a normalized TaskUpdate into an update document.
// updatedAt is always set.
func buildTaskUpdate(update domain.TaskUpdate, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.ClearDueDate {
		unset["dueDate"] = ""
	}
	if update.AssignedTo != nil {
		if *update.AssignedTo == "" {
			set["assignedTo"] = nil
		} else {
			oid, err := parseObjectID("user", *update.AssignedTo)
			if err != nil {
				return nil, err
			}
			set["assignedTo"] = oid
		}
	}

	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc, nil
}
