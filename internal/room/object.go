package room

import "maps"

// Object is one room object. The record is the union of the fields the
// viewer reads across all object types; fields a type does not carry stay
// at their zero value.
type Object struct {
	ID   string     `json:"_id"`
	Type ObjectType `json:"type"`
	Room string     `json:"room,omitempty"`
	X    int        `json:"x"`
	Y    int        `json:"y"`

	User string `json:"user,omitempty"`
	Name string `json:"name,omitempty"`

	Hits    int `json:"hits,omitempty"`
	HitsMax int `json:"hitsMax,omitempty"`

	Store          map[string]int `json:"store,omitempty"`
	StoreCapacity  int            `json:"storeCapacity,omitempty"`
	Energy         int            `json:"energy,omitempty"`
	EnergyCapacity int            `json:"energyCapacity,omitempty"`

	Level         int   `json:"level,omitempty"`
	Progress      int   `json:"progress,omitempty"`
	ProgressTotal int   `json:"progressTotal,omitempty"`
	DowngradeTime int64 `json:"downgradeTime,omitempty"`

	Fatigue              int   `json:"fatigue,omitempty"`
	AgeTime              int64 `json:"ageTime,omitempty"`
	NextDecayTime        int64 `json:"nextDecayTime,omitempty"`
	NextRegenerationTime int64 `json:"nextRegenerationTime,omitempty"`
	DecayTime            int64 `json:"decayTime,omitempty"`
	DeathTime            int64 `json:"deathTime,omitempty"`

	MineralType   string `json:"mineralType,omitempty"`
	MineralAmount int    `json:"mineralAmount,omitempty"`
	DepositType   string `json:"depositType,omitempty"`
	ResourceType  string `json:"resourceType,omitempty"`
	StructureType string `json:"structureType,omitempty"`

	CreepID          string `json:"creepId,omitempty"`
	CreepName        string `json:"creepName,omitempty"`
	CreepTicksToLive int    `json:"creepTicksToLive,omitempty"`

	Public       bool  `json:"isPublic,omitempty"`
	Off          bool  `json:"off,omitempty"`
	Cooldown     int   `json:"cooldown,omitempty"`
	CooldownTime int64 `json:"cooldownTime,omitempty"`
}

// ObjectPatch is an incremental update to an Object. Nil fields are left
// unchanged; a nil entry in Store removes that resource.
type ObjectPatch struct {
	Room *string `json:"room"`
	X    *int    `json:"x"`
	Y    *int    `json:"y"`

	User *string `json:"user"`
	Name *string `json:"name"`

	Hits    *int `json:"hits"`
	HitsMax *int `json:"hitsMax"`

	Store          map[string]*int `json:"store"`
	StoreCapacity  *int            `json:"storeCapacity"`
	Energy         *int            `json:"energy"`
	EnergyCapacity *int            `json:"energyCapacity"`

	Level         *int   `json:"level"`
	Progress      *int   `json:"progress"`
	ProgressTotal *int   `json:"progressTotal"`
	DowngradeTime *int64 `json:"downgradeTime"`

	Fatigue              *int   `json:"fatigue"`
	AgeTime              *int64 `json:"ageTime"`
	NextDecayTime        *int64 `json:"nextDecayTime"`
	NextRegenerationTime *int64 `json:"nextRegenerationTime"`
	DecayTime            *int64 `json:"decayTime"`
	DeathTime            *int64 `json:"deathTime"`

	MineralType   *string `json:"mineralType"`
	MineralAmount *int    `json:"mineralAmount"`
	DepositType   *string `json:"depositType"`
	ResourceType  *string `json:"resourceType"`
	StructureType *string `json:"structureType"`

	CreepID          *string `json:"creepId"`
	CreepName        *string `json:"creepName"`
	CreepTicksToLive *int    `json:"creepTicksToLive"`

	Public       *bool  `json:"isPublic"`
	Off          *bool  `json:"off"`
	Cooldown     *int   `json:"cooldown"`
	CooldownTime *int64 `json:"cooldownTime"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges p into o field by field. The object's id and type never
// change through a patch.
func (o *Object) Apply(p *ObjectPatch) {
	set(&o.Room, p.Room)
	set(&o.X, p.X)
	set(&o.Y, p.Y)
	set(&o.User, p.User)
	set(&o.Name, p.Name)
	set(&o.Hits, p.Hits)
	set(&o.HitsMax, p.HitsMax)
	set(&o.StoreCapacity, p.StoreCapacity)
	set(&o.Energy, p.Energy)
	set(&o.EnergyCapacity, p.EnergyCapacity)
	set(&o.Level, p.Level)
	set(&o.Progress, p.Progress)
	set(&o.ProgressTotal, p.ProgressTotal)
	set(&o.DowngradeTime, p.DowngradeTime)
	set(&o.Fatigue, p.Fatigue)
	set(&o.AgeTime, p.AgeTime)
	set(&o.NextDecayTime, p.NextDecayTime)
	set(&o.NextRegenerationTime, p.NextRegenerationTime)
	set(&o.DecayTime, p.DecayTime)
	set(&o.DeathTime, p.DeathTime)
	set(&o.MineralType, p.MineralType)
	set(&o.MineralAmount, p.MineralAmount)
	set(&o.DepositType, p.DepositType)
	set(&o.ResourceType, p.ResourceType)
	set(&o.StructureType, p.StructureType)
	set(&o.CreepID, p.CreepID)
	set(&o.CreepName, p.CreepName)
	set(&o.CreepTicksToLive, p.CreepTicksToLive)
	set(&o.Public, p.Public)
	set(&o.Off, p.Off)
	set(&o.Cooldown, p.Cooldown)
	set(&o.CooldownTime, p.CooldownTime)

	if p.Store != nil && o.Store == nil {
		o.Store = make(map[string]int, len(p.Store))
	}
	for resource, amount := range p.Store {
		if amount == nil {
			delete(o.Store, resource)
			continue
		}
		o.Store[resource] = *amount
	}
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	c := *o
	c.Store = maps.Clone(o.Store)
	return &c
}

// StoreTotal sums every resource held in the object's store.
func (o *Object) StoreTotal() int {
	total := 0
	for _, amount := range o.Store {
		total += amount
	}
	return total
}
