package core

// =============================================================================
// COLLECTION FILTERS - pure helpers over value slices
// =============================================================================

func TasksAssignedTo(tasks []Task, assignee string) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Assignee == assignee {
			out = append(out, t)
		}
	}
	return out
}

func TasksWithStatus(tasks []Task, status TaskStatus) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func TasksOfType(tasks []Task, typ TaskType) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

func WishesOwnedBy(wishes []Wish, owner string) []Wish {
	var out []Wish
	for _, w := range wishes {
		if w.Owner == owner {
			out = append(out, w)
		}
	}
	return out
}

func WishesWithStatus(wishes []Wish, status WishStatus) []Wish {
	var out []Wish
	for _, w := range wishes {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out
}
