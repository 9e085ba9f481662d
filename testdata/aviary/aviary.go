package aviary

type Swimmer interface {
	Swim()
}

type Featherer interface {
	Molt()
}

// Bird lumps every capability together.
type Bird interface {
	Swim()
	Molt()
	Fly()
	Sing() string
}

type swimmer interface {
	Swim()
}

type Penguin struct {
	feathers int
}

func (p *Penguin) Swim() {}

func (p *Penguin) Molt() { p.feathers -= 4 }

type Fish struct{}

func (Fish) Swim() {}

type Robin struct{}

func (Robin) Molt() {}

func (Robin) Fly() {}

func (Robin) Sing() string { return "chirp" }

type Duck struct{}

func (Duck) Swim() {}

func (Duck) Molt() {}

func (Duck) Fly() {}

func (Duck) Sing() string { return "quack" }

type Rock struct{}
