package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/apperrors"
	"taskmanager/models"
	"taskmanager/repositories"
)

func TestProjectCreate_StampsOwner(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	svc := newProjectService(db)

	project, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "Renovation", Description: "House work"})
	require.NoError(t, err)
	require.NotNil(t, project.OwnerID)
	assert.Equal(t, alice.ID, *project.OwnerID)
	require.NotNil(t, project.Owner)
	assert.Equal(t, "alice", project.Owner.Username)
}

func TestProjectCreate_NameRequired(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	svc := newProjectService(db)

	_, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "  "})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
}

func TestProjectList_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	svc := newProjectService(db)

	created, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "Secret"})
	require.NoError(t, err)

	bobProjects, err := svc.List(context.Background(), bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, bobProjects, "another user must never see the project")

	_, err = svc.Get(context.Background(), bob.ID, created.ID)
	var nfErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfErr, "out-of-scope reads look like missing rows")

	aliceProjects, err := svc.List(context.Background(), alice.ID, "")
	require.NoError(t, err)
	require.Len(t, aliceProjects, 1)
	assert.Equal(t, "Secret", aliceProjects[0].Name)
}

func TestProjectList_Sort(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	svc := newProjectService(db)

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		_, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: name})
		require.NoError(t, err)
	}

	byName, err := svc.List(context.Background(), alice.ID, repositories.SortName)
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "Apple", byName[0].Name)
	assert.Equal(t, "Zebra", byName[2].Name)

	// Unknown sort values fall back to the default ordering.
	fallback, err := svc.List(context.Background(), alice.ID, "bogus")
	require.NoError(t, err)
	require.Len(t, fallback, 3)
	assert.Equal(t, "Zebra", fallback[0].Name, "default order is creation order")
}

func TestProjectUpdate_OwnerImmutable(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	svc := newProjectService(db)

	created, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "Before"})
	require.NoError(t, err)

	name := "After"
	updated, err := svc.Update(context.Background(), alice.ID, created.ID, ProjectUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	require.NotNil(t, updated.OwnerID)
	assert.Equal(t, alice.ID, *updated.OwnerID)
}

func TestProjectUpdate_OutOfScopeIsNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	svc := newProjectService(db)

	created, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "Alice's"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(context.Background(), bob.ID, created.ID, ProjectUpdate{Name: &name})
	var nfErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestProjectDelete_CascadesToTasks(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	projectSvc := newProjectService(db)
	taskSvc := newTaskService(db)

	project, err := projectSvc.Create(context.Background(), alice.ID, ProjectInput{Name: "Doomed"})
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err := taskSvc.Create(context.Background(), alice.ID, TaskInput{ProjectID: project.ID, Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, projectSvc.Delete(context.Background(), alice.ID, project.ID))

	tasks, err := taskSvc.List(context.Background(), alice.ID, repositories.TaskFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	assert.Empty(t, tasks, "deleting a project deletes its tasks")

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthorizeWrite_Project(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	svc := newProjectService(db)

	project, err := svc.Create(context.Background(), alice.ID, ProjectInput{Name: "Mine"})
	require.NoError(t, err)

	assert.NoError(t, svc.AuthorizeWrite(alice.ID, project))

	err = svc.AuthorizeWrite(bob.ID, project)
	var fErr *apperrors.ForbiddenError
	assert.ErrorAs(t, err, &fErr)
}
