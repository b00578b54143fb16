package model

// Sample returns a small demo list covering every priority and both
// checked states.
func Sample() *TaskList {
	return NewTaskList(
		Task{ID: 1, Content: "Write the quarterly report", Priority: PriorityHigh},
		Task{ID: 2, Content: "Book a dentist appointment", Priority: PriorityMed, Checked: true},
		Task{ID: 3, Content: "Water the plants", Priority: PriorityLow},
		Task{ID: 4, Content: "Read a chapter of a book", Priority: PriorityNone},
		Task{ID: 5, Content: "Renew the car insurance", Priority: PriorityHigh, Checked: true},
	)
}
