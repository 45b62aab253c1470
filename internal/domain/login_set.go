package domain

// LoginSet множество логинов с сохранением порядка добавления
type LoginSet struct {
	order []string
	index map[string]struct{}
}

func NewLoginSet(logins ...string) *LoginSet {
	s := &LoginSet{index: make(map[string]struct{}, len(logins))}
	s.Add(logins...)
	return s
}

func (s *LoginSet) Add(logins ...string) {
	for _, login := range logins {
		if login == "" {
			continue
		}
		if _, ok := s.index[login]; ok {
			continue
		}
		s.index[login] = struct{}{}
		s.order = append(s.order, login)
	}
}

func (s *LoginSet) Contains(login string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[login]
	return ok
}

func (s *LoginSet) Logins() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *LoginSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
