package models

import (
	"github.com/pahanaedu/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	BaseModel
	AccountNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Address       string          `gorm:"type:varchar(500);not null"`
	Telephone     string          `gorm:"type:varchar(50);not null"`
	Email         string          `gorm:"type:varchar(200)"`
	UnitsConsumed decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts CustomerModel to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:    m.BaseModel.ToDomain(),
		AccountNumber: m.AccountNumber,
		Name:          m.Name,
		Address:       m.Address,
		Telephone:     m.Telephone,
		Email:         m.Email,
		UnitsConsumed: m.UnitsConsumed,
	}
}

// CustomerModelFromDomain converts a domain Customer to its persistence model
func CustomerModelFromDomain(customer *partner.Customer) *CustomerModel {
	model := &CustomerModel{
		AccountNumber: customer.AccountNumber,
		Name:          customer.Name,
		Address:       customer.Address,
		Telephone:     customer.Telephone,
		Email:         customer.Email,
		UnitsConsumed: customer.UnitsConsumed,
	}
	model.FromDomainBaseEntity(customer.BaseEntity)
	return model
}
