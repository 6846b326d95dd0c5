package encset

import (
	"slices"

	"github.com/hengadev/encset/internal/encseterr"
)

// EnterGroup descends into the group called name. The name is hashed in the
// context of the current path, so "b" under "a" is unrelated to a top-level
// "b". Every EnterGroup must be paired with one ExitGroup.
func (s *Store) EnterGroup(name string) {
	s.path = append(s.path, s.codec.Hash(name, s.Group()))
}

// EnterGroupAt descends into the i-th existing child group, in the sorted
// order of the persisted identifiers. It allows walking groups without
// knowing their names.
func (s *Store) EnterGroupAt(i int) error {
	groups, err := s.backend.ChildGroups(s.path)
	if err != nil {
		return encseterr.NewBackendError(encseterr.Unknown, err)
	}
	if i < 0 || i >= len(groups) {
		return encseterr.NewGroupIndexError(i, len(groups))
	}
	s.path = append(s.path, groups[i])
	return nil
}

// ExitGroup leaves the most recently entered group.
func (s *Store) ExitGroup() error {
	if len(s.path) == 0 {
		return ErrGroupUnderflow
	}
	s.path = s.path[:len(s.path)-1]
	return nil
}

// Depth returns the number of groups currently entered.
func (s *Store) Depth() int {
	return len(s.path)
}

// ChildGroupCount returns the number of groups directly under the current
// group.
func (s *Store) ChildGroupCount() (int, error) {
	groups, err := s.backend.ChildGroups(s.path)
	if err != nil {
		return 0, encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return len(groups), nil
}

// ChildKeyCount returns the number of keys stored directly in the current
// group.
func (s *Store) ChildKeyCount() (int, error) {
	keys, err := s.backend.ChildKeys(s.path)
	if err != nil {
		return 0, encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return len(keys), nil
}

// ContainsGroup reports whether a group called name exists directly under
// the current group.
func (s *Store) ContainsGroup(name string) (bool, error) {
	groups, err := s.backend.ChildGroups(s.path)
	if err != nil {
		return false, encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return slices.Contains(groups, s.codec.Hash(name, s.Group())), nil
}

// IsGroupEmpty reports whether the current group holds no keys and no
// subgroups.
func (s *Store) IsGroupEmpty() (bool, error) {
	keys, err := s.backend.ChildKeys(s.path)
	if err != nil {
		return false, encseterr.NewBackendError(encseterr.Unknown, err)
	}
	if len(keys) > 0 {
		return false, nil
	}
	groups, err := s.backend.ChildGroups(s.path)
	if err != nil {
		return false, encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return len(groups) == 0, nil
}
