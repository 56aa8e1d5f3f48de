package models

// Entity is implemented by every stored model.
type Entity interface {
	EntityID() uint
}

func (u User) EntityID() uint     { return u.ID }
func (p Person) EntityID() uint   { return p.ID }
func (p Planet) EntityID() uint   { return p.ID }
func (v Vehicle) EntityID() uint  { return v.ID }
func (f Favorite) EntityID() uint { return f.ID }
