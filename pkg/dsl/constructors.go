package dsl

import "github.com/aretw0/sail/pkg/domain"

// FormLayout builds a container node. Config keys: label, contents.
func FormLayout(config any) *domain.Node {
	return domain.NewNode(domain.KindFormLayout, config)
}

// TextField builds a single-line input node. Config keys: label, value, saveInto.
func TextField(config any) *domain.Node {
	return domain.NewNode(domain.KindTextField, config)
}

// DropdownField builds a single-select node. Config keys: label, choices, saveInto.
func DropdownField(config any) *domain.Node {
	return domain.NewNode(domain.KindDropdownField, config)
}

// Button builds a clickable node. Config keys: label.
func Button(config any) *domain.Node {
	return domain.NewNode(domain.KindButton, config)
}

// If returns component when condition is true and the absence node otherwise.
// The condition is already evaluated; nothing is deferred.
func If(condition bool, component any) any {
	if condition {
		return component
	}
	return nil
}
