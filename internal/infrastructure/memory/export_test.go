package memory

// LockRows expone a los tests cuántas filas de bloqueo existen.
func (s *Store) LockRows() int { return s.locks.Rows() }
