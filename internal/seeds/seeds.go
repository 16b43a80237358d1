package seeds

func SeedAll() error {
	if err := SeedRooms(); err != nil {
		return err
	}
	if err := SeedAdmin(); err != nil {
		return err
	}
	return nil
}
