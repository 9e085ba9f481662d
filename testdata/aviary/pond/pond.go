package pond

type Frog struct{}

func (Frog) Swim() {}
