package beans

import "reflect"

// LocalBeansProvider looks beans up without consulting any parent.
type LocalBeansProvider interface {
	LookUpOptionalLocalBean(name string, typ reflect.Type) (any, bool)
	LookUpOptionalLocalBeanByType(typ reflect.Type) (any, bool)
	LookUpLocalBeans(typ reflect.Type) []any
}

// HierarchicalBeansProvider asks its local provider first and falls back to
// an optional parent. Local beans shadow parent beans of the same name.
type HierarchicalBeansProvider struct {
	local  LocalBeansProvider
	parent BeansProvider
}

// NewHierarchicalBeansProvider composes local over parent. parent may be nil.
func NewHierarchicalBeansProvider(local LocalBeansProvider, parent BeansProvider) *HierarchicalBeansProvider {
	return &HierarchicalBeansProvider{local: local, parent: parent}
}

// Parent returns the parent provider, or nil.
func (h *HierarchicalBeansProvider) Parent() BeansProvider { return h.parent }

func (h *HierarchicalBeansProvider) LookUpOptionalBean(name string, typ reflect.Type) (any, bool) {
	if bean, ok := h.local.LookUpOptionalLocalBean(name, typ); ok {
		return bean, true
	}
	if h.parent == nil {
		return nil, false
	}
	return h.parent.LookUpOptionalBean(name, typ)
}

func (h *HierarchicalBeansProvider) LookUpOptionalBeanByType(typ reflect.Type) (any, bool) {
	if bean, ok := h.local.LookUpOptionalLocalBeanByType(typ); ok {
		return bean, true
	}
	if h.parent == nil {
		return nil, false
	}
	return h.parent.LookUpOptionalBeanByType(typ)
}

// LookUpBeans returns local matches followed by parent matches.
// Duplicates are not removed.
func (h *HierarchicalBeansProvider) LookUpBeans(typ reflect.Type) []any {
	found := h.local.LookUpLocalBeans(typ)
	if h.parent == nil {
		return found
	}
	return append(found, h.parent.LookUpBeans(typ)...)
}
