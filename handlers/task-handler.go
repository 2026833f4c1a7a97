package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskmanager/apperrors"
	"taskmanager/models"
	"taskmanager/repositories"
	"taskmanager/services"
)

const dueDateLayout = "2006-01-02"

// TaskHandler serves owner-scoped CRUD for tasks.
type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

type taskRequest struct {
	Project     uint    `json:"project"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	AssignedTo  *uint   `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
}

type taskUpdateRequest struct {
	Project     *uint   `json:"project"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssignedTo  *uint   `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	Completed   *bool   `json:"completed"`
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, *raw)
	if err != nil {
		return nil, apperrors.NewValidation("due_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	return &due, nil
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := repositories.TaskFilter{
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
	}
	if raw := query.Get("project"); raw != "" {
		// A malformed project filter narrows to nothing rather than erroring,
		// consistent with unknown sort/status values falling back silently.
		projectID, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			id := uint(projectID)
			filter.ProjectID = &id
		} else {
			writeJSON(w, http.StatusOK, []models.TaskResponse{})
			return
		}
	}

	tasks, err := h.TaskService.List(r.Context(), identity.UserID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewTaskResponseList(tasks))
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.TaskService.Create(r.Context(), identity.UserID, services.TaskInput{
		ProjectID:    req.Project,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		AssignedToID: req.AssignedTo,
		DueDate:      due,
		Completed:    req.Completed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.NewTaskResponse(*task))
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	task, err := h.TaskService.Get(r.Context(), identity.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewTaskResponse(*task))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}

	upd := services.TaskUpdate{
		ProjectID:    req.Project,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		AssignedToID: req.AssignedTo,
		Completed:    req.Completed,
	}
	if req.DueDate != nil {
		upd.DueDate = due
	}

	task, err := h.TaskService.Update(r.Context(), identity.UserID, id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewTaskResponse(*task))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	if err := h.TaskService.Delete(r.Context(), identity.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
