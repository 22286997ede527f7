package script

// Action kinds as written in the "type" field, in the order error messages
// list them.
const (
	KindDo                   = "do"
	KindAdd                  = "add"
	KindRemove               = "remove"
	KindPlaySound            = "play sound"
	KindPlayMusic            = "play music"
	KindWait                 = "wait"
	KindWaitUntilWithin      = "wait until within"
	KindChangeSprite         = "change sprite"
	KindChangeState          = "change state"
	KindChangeHeroHead       = "change hero head"
	KindFreeHero             = "free hero"
	KindMove                 = "move"
	KindCamera               = "camera"
	KindAbsoluteCamera       = "absolute camera"
	KindChangeHeroVisibility = "change hero visibility"
	KindTransition           = "transition"
	KindFight                = "fight"
)

var ActionKinds = []string{
	KindDo,
	KindAdd,
	KindRemove,
	KindPlaySound,
	KindPlayMusic,
	KindWait,
	KindWaitUntilWithin,
	KindChangeSprite,
	KindChangeState,
	KindChangeHeroHead,
	KindFreeHero,
	KindMove,
	KindCamera,
	KindAbsoluteCamera,
	KindChangeHeroVisibility,
	KindTransition,
	KindFight,
}

// Action is one step of a scene script. The set of implementations is closed;
// Visitor has a method per kind so a new kind does not compile until every
// executor handles it.
type Action interface {
	Kind() string
	Accept(v Visitor)
	isAction()
}

type Visitor interface {
	VisitDo(a *Do)
	VisitAdd(a *Add)
	VisitRemove(a *Remove)
	VisitPlaySound(a *PlaySound)
	VisitPlayMusic(a *PlayMusic)
	VisitWait(a *Wait)
	VisitWaitUntilWithin(a *WaitUntilWithin)
	VisitChangeSprite(a *ChangeSprite)
	VisitChangeState(a *ChangeState)
	VisitChangeHeroHead(a *ChangeHeroHead)
	VisitFreeHero(a *FreeHero)
	VisitMove(a *Move)
	VisitCamera(a *Camera)
	VisitAbsoluteCamera(a *AbsoluteCamera)
	VisitChangeHeroVisibility(a *ChangeHeroVisibility)
	VisitTransition(a *Transition)
	VisitFight(a *Fight)
}

// Do runs another script to completion alongside the current one.
type Do struct {
	Script string
}

type Add struct {
	Name     string
	Sprite   string
	X, Y, Z  float64
	Absolute bool
	Shadow   *Shadow
}

type Shadow struct {
	X, Y float64
}

type Remove struct {
	Name string
}

type PlaySound struct {
	Sound string
}

type PlayMusic struct {
	Path string
}

// Wait suspends for Seconds, or until the runner's pending actions drain when
// Seconds is nil.
type Wait struct {
	Seconds *float64
}

// WaitUntilWithin suspends until the hero is within X and Y of the character.
type WaitUntilWithin struct {
	Name string
	X, Y float64
}

type ChangeSprite struct {
	Name   string
	Sprite string
}

type ChangeState struct {
	Name  string
	State string
}

type ChangeHeroHead struct {
	Sprite string
}

type FreeHero struct{}

type Move struct {
	Name     string
	Seconds  float64
	X, Y, Z  float64
	Absolute bool
	EaseIn   bool
	EaseOut  bool
}

// Camera follows the hero, framing the named character as well when Name is
// set.
type Camera struct {
	Name  *string
	Zoom  float64
	Speed float64
}

type AbsoluteCamera struct {
	X, Y  float64
	Zoom  float64
	Speed float64
}

type ChangeHeroVisibility struct {
	Visible bool
}

type Transition struct {
	NextScreen string
}

type Fight struct{}

func (*Do) Kind() string                   { return KindDo }
func (*Add) Kind() string                  { return KindAdd }
func (*Remove) Kind() string               { return KindRemove }
func (*PlaySound) Kind() string            { return KindPlaySound }
func (*PlayMusic) Kind() string            { return KindPlayMusic }
func (*Wait) Kind() string                 { return KindWait }
func (*WaitUntilWithin) Kind() string      { return KindWaitUntilWithin }
func (*ChangeSprite) Kind() string         { return KindChangeSprite }
func (*ChangeState) Kind() string          { return KindChangeState }
func (*ChangeHeroHead) Kind() string       { return KindChangeHeroHead }
func (*FreeHero) Kind() string             { return KindFreeHero }
func (*Move) Kind() string                 { return KindMove }
func (*Camera) Kind() string               { return KindCamera }
func (*AbsoluteCamera) Kind() string       { return KindAbsoluteCamera }
func (*ChangeHeroVisibility) Kind() string { return KindChangeHeroVisibility }
func (*Transition) Kind() string           { return KindTransition }
func (*Fight) Kind() string                { return KindFight }

func (a *Do) Accept(v Visitor)                   { v.VisitDo(a) }
func (a *Add) Accept(v Visitor)                  { v.VisitAdd(a) }
func (a *Remove) Accept(v Visitor)               { v.VisitRemove(a) }
func (a *PlaySound) Accept(v Visitor)            { v.VisitPlaySound(a) }
func (a *PlayMusic) Accept(v Visitor)            { v.VisitPlayMusic(a) }
func (a *Wait) Accept(v Visitor)                 { v.VisitWait(a) }
func (a *WaitUntilWithin) Accept(v Visitor)      { v.VisitWaitUntilWithin(a) }
func (a *ChangeSprite) Accept(v Visitor)         { v.VisitChangeSprite(a) }
func (a *ChangeState) Accept(v Visitor)          { v.VisitChangeState(a) }
func (a *ChangeHeroHead) Accept(v Visitor)       { v.VisitChangeHeroHead(a) }
func (a *FreeHero) Accept(v Visitor)             { v.VisitFreeHero(a) }
func (a *Move) Accept(v Visitor)                 { v.VisitMove(a) }
func (a *Camera) Accept(v Visitor)               { v.VisitCamera(a) }
func (a *AbsoluteCamera) Accept(v Visitor)       { v.VisitAbsoluteCamera(a) }
func (a *ChangeHeroVisibility) Accept(v Visitor) { v.VisitChangeHeroVisibility(a) }
func (a *Transition) Accept(v Visitor)           { v.VisitTransition(a) }
func (a *Fight) Accept(v Visitor)                { v.VisitFight(a) }

func (*Do) isAction()                   {}
func (*Add) isAction()                  {}
func (*Remove) isAction()               {}
func (*PlaySound) isAction()            {}
func (*PlayMusic) isAction()            {}
func (*Wait) isAction()                 {}
func (*WaitUntilWithin) isAction()      {}
func (*ChangeSprite) isAction()         {}
func (*ChangeState) isAction()          {}
func (*ChangeHeroHead) isAction()       {}
func (*FreeHero) isAction()             {}
func (*Move) isAction()                 {}
func (*Camera) isAction()               {}
func (*AbsoluteCamera) isAction()       {}
func (*ChangeHeroVisibility) isAction() {}
func (*Transition) isAction()           {}
func (*Fight) isAction()                {}
