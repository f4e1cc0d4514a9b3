package beans

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// DefinitionState is the lifecycle of a BeanDefinition.
type DefinitionState int

const (
	Pending DefinitionState = iota
	Producing
	Produced
)

func (s DefinitionState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Producing:
		return "producing"
	case Produced:
		return "produced"
	default:
		return fmt.Sprintf("DefinitionState(%d)", int(s))
	}
}

// Producer builds a bean, looking its own dependencies up in p.
type Producer func(p BeansProvider) (any, error)

// BeanDefinition is a recipe for exactly one bean.
type BeanDefinition struct {
	name       string
	typ        reflect.Type
	targetType reflect.Type
	producer   Producer
	state      DefinitionState
	bean       any
}

// NewBeanDefinition describes a bean of type typ. An empty name lets the
// registry generate one.
func NewBeanDefinition(name string, typ reflect.Type, producer Producer) *BeanDefinition {
	return &BeanDefinition{name: name, typ: typ, producer: producer}
}

// NewScopedBeanDefinition describes a scoped factory bean of type typ that
// produces beans of targetType. It can satisfy requests for either type.
func NewScopedBeanDefinition(name string, typ, targetType reflect.Type, producer Producer) *BeanDefinition {
	return &BeanDefinition{name: name, typ: typ, targetType: targetType, producer: producer}
}

func (d *BeanDefinition) Name() string           { return d.name }
func (d *BeanDefinition) Type() reflect.Type     { return d.typ }
func (d *BeanDefinition) State() DefinitionState { return d.state }

// CanProduce reports whether the produced bean would satisfy a request for typ.
func (d *BeanDefinition) CanProduce(typ reflect.Type) bool {
	if d.typ.AssignableTo(typ) {
		return true
	}
	return d.targetType != nil && d.targetType.AssignableTo(typ)
}

// Produce runs the producer. It returns ErrBeanAlreadyProduced on a second
// call and ErrBeanInProduction when the producer re-enters its own definition.
func (d *BeanDefinition) Produce(p BeansProvider) (any, error) {
	switch d.state {
	case Produced:
		return nil, errors.WithStack(ErrBeanAlreadyProduced)
	case Producing:
		return nil, errors.WithStack(ErrBeanInProduction)
	}

	d.state = Producing
	defer func() {
		if d.state == Producing {
			d.state = Pending
		}
	}()

	bean, err := d.producer(p)
	if err != nil {
		return nil, err
	}
	if IsNil(bean) {
		return nil, errors.WithStack(ErrNilBean)
	}
	if !assignable(bean, d.typ) {
		return nil, errors.Errorf("produced %T is not assignable to %s", bean, d.typ)
	}

	d.state = Produced
	d.bean = bean
	return bean, nil
}

// Bean returns the produced bean. It panics with ErrBeanNotProduced before
// Produce succeeded.
func (d *BeanDefinition) Bean() any {
	if d.state != Produced {
		panic(ErrBeanNotProduced)
	}
	return d.bean
}

func (d *BeanDefinition) String() string {
	return describe("bean definition", d.name, d.typ)
}
