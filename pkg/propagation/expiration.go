package propagation

// AllNotPropagatedExpiration drops every received piece that was not
// selected.
type AllNotPropagatedExpiration struct{}

func (AllNotPropagatedExpiration) Expire(user *UserState, selected Selection, _ int) []int {
	var out []int
	for p := range user.Received() {
		if !selected.Contains(p.Info) {
			out = append(out, p.Info)
		}
	}
	return out
}

// InfiniteExpiration never drops anything.
type InfiniteExpiration struct{}

func (InfiniteExpiration) Expire(*UserState, Selection, int) []int { return nil }

// TimeWindowExpiration drops unselected received pieces whose record is at
// least window iterations old.
type TimeWindowExpiration struct {
	window int
}

func NewTimeWindowExpiration(window int) *TimeWindowExpiration {
	return &TimeWindowExpiration{window: window}
}

func (m *TimeWindowExpiration) Expire(user *UserState, selected Selection, iteration int) []int {
	var out []int
	for p := range user.Received() {
		if iteration-p.Timestamp >= m.window && !selected.Contains(p.Info) {
			out = append(out, p.Info)
		}
	}
	return out
}
