package a

// @enummessage
type Status int

const (
	// @message("Waiting")
	// @serialize("pending")
	Pending Status = iota
	// @message("one")
	// @message("two")
	Twice // want `@message repeated 2 times on Twice`
	// @detailed_message
	Empty // want `@detailed_message on Empty requires a quoted value`
	// @serialize
	NoName // want `@serialize on NoName requires a quoted value`
	Plain
)

type Other int

const (
	// @message("lost")
	Stray Other = 1 // want `@message on Stray, which is not a variant of an @enummessage enum`
)

// @message("untyped")
const Loose = 3 // want `@message on Loose, which is not a variant of an @enummessage enum`

// @enummessage
type Ratio float64 // want `@enummessage on Ratio: underlying type float64: enummessage only works on enums`

// @enummessage
type Box[T any] interface{ Get() T } // want `@enummessage on Box: generic enum types are not supported`

// @enummessage
type Shape interface{ isShape() }

// @message("A circle")
type Circle struct{}

func (*Circle) isShape() {}

// @message("one")
// @msg("two")
type Square struct{} // want `@message repeated 2 times on Square`

func (Square) isShape() {}

// @message("not a shape")
type Point struct{} // want `@message on Point, which is not a variant of an @enummessage enum`
