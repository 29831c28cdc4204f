package domain

// issueList collects issue texts, keeping only the first occurrence of each.
type issueList struct {
	items []string
	seen  map[string]struct{}
}

func newIssueList() *issueList {
	return &issueList{
		items: []string{},
		seen:  make(map[string]struct{}),
	}
}

func (l *issueList) add(issue string) {
	if _, ok := l.seen[issue]; ok {
		return
	}
	l.seen[issue] = struct{}{}
	l.items = append(l.items, issue)
}

func (l *issueList) empty() bool {
	return len(l.items) == 0
}
