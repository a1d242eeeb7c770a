package zone

import (
	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
)

// Generate creates one pending instance per template, in template order.
// It never looks at earlier instances; whatever status they carried is gone.
func Generate(templates []model.TaskTemplate, ids idgen.Generator) []model.TaskInstance {
	tasks := make([]model.TaskInstance, 0, len(templates))
	for _, tmpl := range templates {
		tasks = append(tasks, model.TaskInstance{
			ID:         ids.NewID("task"),
			TemplateID: tmpl.ID,
			Name:       tmpl.Name,
			Status:     model.StatusPending,
		})
	}
	return tasks
}
