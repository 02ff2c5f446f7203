package domain

import (
	"fmt"
	"slices"
)

// KindClass — имя записи класса в ошибках и схемах.
const KindClass = "class"

// Class — класс внутри системы классификации.
type Class struct {
	record
	data classJSON
}

type classJSON struct {
	ID            Text   `json:"id"`
	Name          string `json:"name"`
	Code          Text   `json:"code"`
	Description   Text   `json:"description"`
	ClassParentID Text   `json:"class_parent_id"`
	Links         Links  `json:"links"`
}

var classRequired = []string{"id", "name"}

// ParseClass создаёт запись класса из JSON объекта.
func ParseClass(raw []byte) (*Class, error) {
	var v classJSON
	if err := decode(KindClass, raw, classRequired, &v); err != nil {
		return nil, err
	}
	if v.Links == nil {
		v.Links = Links{}
	}
	return &Class{record: record{raw: compact(raw)}, data: v}, nil
}

// ID возвращает идентификатор класса.
func (c *Class) ID() string { return c.data.ID.String() }

// Name возвращает имя класса.
func (c *Class) Name() string { return c.data.Name }

// Code возвращает код класса (может быть пустым).
func (c *Class) Code() string { return c.data.Code.String() }

// Description возвращает описание класса.
func (c *Class) Description() string { return c.data.Description.String() }

// ParentID возвращает id родительского класса, если сервер его прислал.
func (c *Class) ParentID() string { return c.data.ClassParentID.String() }

// Links возвращает копию ссылок класса.
func (c *Class) Links() Links { return slices.Clone(c.data.Links) }

// Parent возвращает ссылку на родительский класс.
func (c *Class) Parent() (Link, bool) { return c.data.Links.First(RelParent) }

// Children возвращает ссылки на дочерние классы.
func (c *Class) Children() Links { return c.data.Links.ByRelation(RelChild) }

// Classes — коллекция классов системы в порядке сервера.
type Classes struct {
	items []*Class
}

// ParseClasses разбирает коллекцию классов. Сервер отдаёт либо
// JSON массив, либо объект с массивом "classes".
func ParseClasses(raw []byte) (*Classes, error) {
	values, err := collection("classes", raw, "classes")
	if err != nil {
		return nil, err
	}

	items := make([]*Class, 0, len(values))
	for _, value := range values {
		c, err := ParseClass([]byte(value.Raw))
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}

	return &Classes{items: items}, nil
}

// NewClasses собирает коллекцию из готовых записей.
func NewClasses(items ...*Class) *Classes {
	return &Classes{items: slices.Clone(items)}
}

// Len возвращает количество классов.
func (cs *Classes) Len() int { return len(cs.items) }

// All возвращает копию списка классов.
func (cs *Classes) All() []*Class { return slices.Clone(cs.items) }

// Names возвращает имена классов в порядке сервера.
func (cs *Classes) Names() []string {
	names := make([]string, 0, len(cs.items))
	for _, c := range cs.items {
		names = append(names, c.Name())
	}
	return names
}

// ByName ищет класс по имени.
func (cs *Classes) ByName(name string) (*Class, bool) {
	i := slices.IndexFunc(cs.items, func(c *Class) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return cs.items[i], true
}

// IDByName возвращает id класса по его имени.
func (cs *Classes) IDByName(name string) (string, error) {
	c, ok := cs.ByName(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrClassNotFound, name)
	}
	return c.ID(), nil
}

// Resolve ищет класс по имени, а затем по id.
func (cs *Classes) Resolve(key string) (*Class, bool) {
	if c, ok := cs.ByName(key); ok {
		return c, true
	}
	i := slices.IndexFunc(cs.items, func(c *Class) bool { return c.ID() == key })
	if i < 0 {
		return nil, false
	}
	return cs.items[i], true
}
