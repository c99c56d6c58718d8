package models

// Task represents one to-do item as it is persisted in the task slot.
type Task struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	Completed bool   `json:"completed"`
}
