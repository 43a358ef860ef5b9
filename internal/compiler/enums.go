package compiler

import (
	"iter"

	"schemagen/internal/entity"
	"schemagen/internal/prisma"
)

// SynthesizeEnums лениво выдаёт enum'ы для полей, которым они нужны, в порядке полей.
// Дубликаты по имени не схлопываются. На первой ошибке итерация прекращается.
func SynthesizeEnums(fields []entity.Field) iter.Seq2[prisma.Enum, error] {
	return func(yield func(prisma.Enum, error) bool) {
		for _, f := range fields {
			e, ok, err := enumFor(f)
			if err != nil {
				yield(prisma.Enum{}, err)
				return
			}
			if !ok {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// CollectEnums — SynthesizeEnums в слайс.
func CollectEnums(fields []entity.Field) ([]prisma.Enum, error) {
	out := []prisma.Enum{}
	for e, err := range SynthesizeEnums(fields) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func enumFor(f entity.Field) (prisma.Enum, bool, error) {
	switch f.DataType {
	case entity.OptionSet, entity.MultiSelectOptionSet:
		p, err := f.OptionSet()
		if err != nil {
			return prisma.Enum{}, false, err
		}
		// значения живут во внешнем справочнике вариантов
		return prisma.NewEnum(p.OptionsSetID), true, nil
	case entity.TwoOptions:
		p, err := f.TwoOptions()
		if err != nil {
			return prisma.Enum{}, false, err
		}
		// default намеренно третьим значением, даже если совпадает с одним из первых двух
		return prisma.NewEnum(TwoOptionsEnumName(f.Name), p.FirstOption, p.SecondOption, p.Default), true, nil
	default:
		return prisma.Enum{}, false, nil
	}
}
