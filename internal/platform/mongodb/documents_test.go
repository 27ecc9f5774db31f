package mongodb

import (
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func strPtr(s string) *string { return &s }

func TestTaskDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignee := primitive.NewObjectID()

	task, err := domain.NewTask("Write report", "quarterly", domain.TaskStatusCompleted, &due)
	require.NoError(t, err)
	task.AssignedTo = &domain.UserRef{ID: assignee.Hex(), Name: "ignored"}

	doc, err := newTaskDocument(task)
	require.NoError(t, err)
	require.NotNil(t, doc.AssignedTo)
	assert.Equal(t, assignee, *doc.AssignedTo)
	assert.True(t, doc.ID.IsZero(), "id is assigned on insert")

	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()

	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, "Write report", back.Title)
	assert.Equal(t, domain.TaskStatusCompleted, back.Status)
	assert.True(t, back.Completed)
	assert.Equal(t, &due, back.DueDate)
	require.NotNil(t, back.AssignedTo)
	assert.Equal(t, assignee.Hex(), back.AssignedTo.ID)
	assert.Empty(t, back.AssignedTo.Name, "assignee is resolved separately")
}

func TestNewTaskDocument_InvalidAssignee(t *testing.T) {
	t.Parallel()

	task := &domain.Task{
		Title:      "x",
		Status:     domain.TaskStatusPending,
		AssignedTo: &domain.UserRef{ID: "not-an-id"},
	}

	_, err := newTaskDocument(task)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestParseObjectID(t *testing.T) {
	t.Parallel()

	valid := primitive.NewObjectID()
	oid, err := parseObjectID("task", valid.Hex())
	require.NoError(t, err)
	assert.Equal(t, valid, oid)

	_, err = parseObjectID("task", "123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Equal(t, "Please provide a valid task ID", err.Error())
}

func TestBuildTaskUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	status := domain.TaskStatusInProgress
	completed := false
	assignee := primitive.NewObjectID()

	tests := []struct {
		name      string
		update    domain.TaskUpdate
		wantSet   bson.M
		wantUnset bson.M
		wantErr   error
	}{
		{
			name:    "empty update only touches updatedAt",
			update:  domain.TaskUpdate{},
			wantSet: bson.M{"updatedAt": now},
		},
		{
			name: "scalar fields",
			update: domain.TaskUpdate{
				Title:       strPtr("New title"),
				Description: strPtr("details"),
				Status:      &status,
				Completed:   &completed,
				DueDate:     &due,
			},
			wantSet: bson.M{
				"updatedAt":   now,
				"title":       "New title",
				"description": "details",
				"status":      "in-progress",
				"completed":   false,
				"dueDate":     due,
			},
		},
		{
			name:      "clear due date",
			update:    domain.TaskUpdate{ClearDueDate: true},
			wantSet:   bson.M{"updatedAt": now},
			wantUnset: bson.M{"dueDate": ""},
		},
		{
			name:    "assign",
			update:  domain.TaskUpdate{AssignedTo: strPtr(assignee.Hex())},
			wantSet: bson.M{"updatedAt": now, "assignedTo": assignee},
		},
		{
			name:    "unassign",
			update:  domain.TaskUpdate{AssignedTo: strPtr("")},
			wantSet: bson.M{"updatedAt": now, "assignedTo": nil},
		},
		{
			name:    "invalid assignee",
			update:  domain.TaskUpdate{AssignedTo: strPtr("zzz")},
			wantErr: domain.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := buildTaskUpdate(tt.update, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantSet, doc["$set"])
			if tt.wantUnset == nil {
				assert.NotContains(t, doc, "$unset")
			} else {
				assert.Equal(t, tt.wantUnset, doc["$unset"])
			}
		})
	}
}

func TestTitleFilter_EscapesRegex(t *testing.T) {
	t.Parallel()

	filter := titleFilter("  a.b*(c)  ")
	re, ok := filter["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\*\(c\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil, store.ErrTaskNotFound))

	err := MapError(mongo.ErrNoDocuments, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = MapError(mongo.ErrNoDocuments, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	err = MapError(dup, nil)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.True(t, IsDuplicateKey(dup))

	assert.ErrorIs(t, MapError(store.ErrConnectionFailed, nil), store.ErrConnectionFailed)

	other := errors.New("network reset")
	assert.Equal(t, other, MapError(other, nil))
	assert.False(t, IsDuplicateKey(other))
}

func TestIndexModels(t *testing.T) {
	t.Parallel()

	users := userIndexModels()
	require.Len(t, users, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, users[0].Keys)
	require.NotNil(t, users[0].Options)
	require.NotNil(t, users[0].Options.Unique)
	assert.True(t, *users[0].Options.Unique)

	tasks := taskIndexModels()
	keys := make([]string, 0, len(tasks))
	for _, model := range tasks {
		keys = append(keys, model.Keys.(bson.D)[0].Key)
	}
	assert.ElementsMatch(t, []string{"status", "assignedTo", "createdAt"}, keys)
}
