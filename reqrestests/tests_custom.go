package reqrestests

// DoCustomTests runs the expectations loaded from a contracts file.
func DoCustomTests(t *T) {
	if len(t.env.contracts) == 0 {
		t.Skip("no contracts file given")
	}
	t.RunTable(t.env.contracts)
}
