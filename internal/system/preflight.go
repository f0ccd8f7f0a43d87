package system

// Preflight pulls a handful of events from sys and discards them, so that a
// Configuration, Dataset or Scheduling error surfaces before the timed run
// starts rather than partway through it.
func Preflight(sys *System, events int) error {
	for i := 0; i < events; i++ {
		if _, _, _, err := sys.Next(); err != nil {
			return err
		}
	}
	return nil
}
