package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/models"
	"taskmanager/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repositories.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test database")
	return db
}

func newUserService(t *testing.T, db *gorm.DB, blackList map[string]bool) *UserService {
	t.Helper()
	if blackList == nil {
		blackList = map[string]bool{}
	}
	return NewUserService(repositories.NewUserRepository(db), blackList)
}

func newProjectService(db *gorm.DB) *ProjectService {
	return NewProjectService(repositories.NewProjectRepository(db))
}

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(
		repositories.NewTaskRepository(db),
		repositories.NewProjectRepository(db),
		repositories.NewUserRepository(db),
	)
}

func registerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	svc := newUserService(t, db, nil)
	user, err := svc.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "Secr3t!pass",
		Password2: "Secr3t!pass",
	})
	require.NoError(t, err)
	return user
}
