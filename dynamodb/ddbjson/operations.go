package ddbjson

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Request bodies. Fields the store does not emulate are still decoded so that
// it can reject them instead of silently dropping them.

type GetItemRequest struct {
	TableName                *string           `json:"TableName"`
	Key                      Item              `json:"Key"`
	ConsistentRead           *bool             `json:"ConsistentRead,omitempty"`
	ProjectionExpression     *string           `json:"ProjectionExpression,omitempty"`
	ExpressionAttributeNames map[string]string `json:"ExpressionAttributeNames,omitempty"`
}

func (r GetItemRequest) Input() *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName:                r.TableName,
		Key:                      r.Key,
		ConsistentRead:           r.ConsistentRead,
		ProjectionExpression:     r.ProjectionExpression,
		ExpressionAttributeNames: r.ExpressionAttributeNames,
	}
}

type PutItemRequest struct {
	TableName                 *string           `json:"TableName"`
	Item                      Item              `json:"Item"`
	ConditionExpression       *string           `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues Item              `json:"ExpressionAttributeValues,omitempty"`
	ReturnValues              types.ReturnValue `json:"ReturnValues,omitempty"`
}

func (r PutItemRequest) Input() *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{
		TableName:                 r.TableName,
		Item:                      r.Item,
		ConditionExpression:       r.ConditionExpression,
		ExpressionAttributeNames:  r.ExpressionAttributeNames,
		ExpressionAttributeValues: r.ExpressionAttributeValues,
		ReturnValues:              r.ReturnValues,
	}
}

type DeleteItemRequest struct {
	TableName                 *string           `json:"TableName"`
	Key                       Item              `json:"Key"`
	ConditionExpression       *string           `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues Item              `json:"ExpressionAttributeValues,omitempty"`
	ReturnValues              types.ReturnValue `json:"ReturnValues,omitempty"`
}

func (r DeleteItemRequest) Input() *dynamodb.DeleteItemInput {
	return &dynamodb.DeleteItemInput{
		TableName:                 r.TableName,
		Key:                       r.Key,
		ConditionExpression:       r.ConditionExpression,
		ExpressionAttributeNames:  r.ExpressionAttributeNames,
		ExpressionAttributeValues: r.ExpressionAttributeValues,
		ReturnValues:              r.ReturnValues,
	}
}

type QueryRequest struct {
	TableName                 *string           `json:"TableName"`
	IndexName                 *string           `json:"IndexName,omitempty"`
	KeyConditionExpression    *string           `json:"KeyConditionExpression,omitempty"`
	FilterExpression          *string           `json:"FilterExpression,omitempty"`
	ProjectionExpression      *string           `json:"ProjectionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues Item              `json:"ExpressionAttributeValues,omitempty"`
	ScanIndexForward          *bool             `json:"ScanIndexForward,omitempty"`
	Limit                     *int32            `json:"Limit,omitempty"`
	ExclusiveStartKey         Item              `json:"ExclusiveStartKey,omitempty"`
	ConsistentRead            *bool             `json:"ConsistentRead,omitempty"`
}

func (r QueryRequest) Input() *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:                 r.TableName,
		IndexName:                 r.IndexName,
		KeyConditionExpression:    r.KeyConditionExpression,
		FilterExpression:          r.FilterExpression,
		ProjectionExpression:      r.ProjectionExpression,
		ExpressionAttributeNames:  r.ExpressionAttributeNames,
		ExpressionAttributeValues: r.ExpressionAttributeValues,
		ScanIndexForward:          r.ScanIndexForward,
		Limit:                     r.Limit,
		ExclusiveStartKey:         r.ExclusiveStartKey,
		ConsistentRead:            r.ConsistentRead,
	}
}

type ScanRequest struct {
	TableName                 *string           `json:"TableName"`
	IndexName                 *string           `json:"IndexName,omitempty"`
	FilterExpression          *string           `json:"FilterExpression,omitempty"`
	ProjectionExpression      *string           `json:"ProjectionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues Item              `json:"ExpressionAttributeValues,omitempty"`
	Limit                     *int32            `json:"Limit,omitempty"`
	ExclusiveStartKey         Item              `json:"ExclusiveStartKey,omitempty"`
	Segment                   *int32            `json:"Segment,omitempty"`
	TotalSegments             *int32            `json:"TotalSegments,omitempty"`
	ConsistentRead            *bool             `json:"ConsistentRead,omitempty"`
}

func (r ScanRequest) Input() *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                 r.TableName,
		IndexName:                 r.IndexName,
		FilterExpression:          r.FilterExpression,
		ProjectionExpression:      r.ProjectionExpression,
		ExpressionAttributeNames:  r.ExpressionAttributeNames,
		ExpressionAttributeValues: r.ExpressionAttributeValues,
		Limit:                     r.Limit,
		ExclusiveStartKey:         r.ExclusiveStartKey,
		Segment:                   r.Segment,
		TotalSegments:             r.TotalSegments,
		ConsistentRead:            r.ConsistentRead,
	}
}

type DescribeTableRequest struct {
	TableName *string `json:"TableName"`
}

func (r DescribeTableRequest) Input() *dynamodb.DescribeTableInput {
	return &dynamodb.DescribeTableInput{TableName: r.TableName}
}

type ListTablesRequest struct {
	ExclusiveStartTableName *string `json:"ExclusiveStartTableName,omitempty"`
	Limit                   *int32  `json:"Limit,omitempty"`
}

func (r ListTablesRequest) Input() *dynamodb.ListTablesInput {
	return &dynamodb.ListTablesInput{
		ExclusiveStartTableName: r.ExclusiveStartTableName,
		Limit:                   r.Limit,
	}
}

// Response bodies.

type GetItemResponse struct {
	Item Item `json:"Item,omitempty"`
}

func NewGetItemResponse(out *dynamodb.GetItemOutput) GetItemResponse {
	return GetItemResponse{Item: out.Item}
}

type PutItemResponse struct {
	Attributes Item `json:"Attributes,omitempty"`
}

func NewPutItemResponse(out *dynamodb.PutItemOutput) PutItemResponse {
	return PutItemResponse{Attributes: out.Attributes}
}

type DeleteItemResponse struct {
	Attributes Item `json:"Attributes,omitempty"`
}

func NewDeleteItemResponse(out *dynamodb.DeleteItemOutput) DeleteItemResponse {
	return DeleteItemResponse{Attributes: out.Attributes}
}

type QueryResponse struct {
	Items            []Item `json:"Items"`
	Count            int32  `json:"Count"`
	ScannedCount     int32  `json:"ScannedCount"`
	LastEvaluatedKey Item   `json:"LastEvaluatedKey,omitempty"`
}

func NewQueryResponse(out *dynamodb.QueryOutput) QueryResponse {
	return QueryResponse{
		Items:            Items(out.Items),
		Count:            out.Count,
		ScannedCount:     out.ScannedCount,
		LastEvaluatedKey: out.LastEvaluatedKey,
	}
}

type ScanResponse struct {
	Items            []Item `json:"Items"`
	Count            int32  `json:"Count"`
	ScannedCount     int32  `json:"ScannedCount"`
	LastEvaluatedKey Item   `json:"LastEvaluatedKey,omitempty"`
}

func NewScanResponse(out *dynamodb.ScanOutput) ScanResponse {
	return ScanResponse{
		Items:            Items(out.Items),
		Count:            out.Count,
		ScannedCount:     out.ScannedCount,
		LastEvaluatedKey: out.LastEvaluatedKey,
	}
}

// Output converts the response back into the SDK shape.
func (r QueryResponse) Output() *dynamodb.QueryOutput {
	return &dynamodb.QueryOutput{
		Items:            attributeMaps(r.Items),
		Count:            r.Count,
		ScannedCount:     r.ScannedCount,
		LastEvaluatedKey: r.LastEvaluatedKey,
	}
}

type DescribeTableResponse struct {
	Table TableDescription `json:"Table"`
}

type TableDescription struct {
	TableName            *string               `json:"TableName"`
	TableStatus          types.TableStatus     `json:"TableStatus"`
	KeySchema            []KeySchemaElement    `json:"KeySchema"`
	AttributeDefinitions []AttributeDefinition `json:"AttributeDefinitions"`
	ItemCount            *int64                `json:"ItemCount,omitempty"`
}

type KeySchemaElement struct {
	AttributeName *string       `json:"AttributeName"`
	KeyType       types.KeyType `json:"KeyType"`
}

type AttributeDefinition struct {
	AttributeName *string                   `json:"AttributeName"`
	AttributeType types.ScalarAttributeType `json:"AttributeType"`
}

func NewDescribeTableResponse(out *dynamodb.DescribeTableOutput) DescribeTableResponse {
	var resp DescribeTableResponse
	if out.Table == nil {
		return resp
	}
	desc := out.Table
	resp.Table = TableDescription{
		TableName:   desc.TableName,
		TableStatus: desc.TableStatus,
		ItemCount:   desc.ItemCount,
	}
	for _, ks := range desc.KeySchema {
		resp.Table.KeySchema = append(resp.Table.KeySchema, KeySchemaElement{
			AttributeName: ks.AttributeName,
			KeyType:       ks.KeyType,
		})
	}
	for _, ad := range desc.AttributeDefinitions {
		resp.Table.AttributeDefinitions = append(resp.Table.AttributeDefinitions, AttributeDefinition{
			AttributeName: ad.AttributeName,
			AttributeType: ad.AttributeType,
		})
	}
	return resp
}

type ListTablesResponse struct {
	TableNames             []string `json:"TableNames"`
	LastEvaluatedTableName *string  `json:"LastEvaluatedTableName,omitempty"`
}

func NewListTablesResponse(out *dynamodb.ListTablesOutput) ListTablesResponse {
	return ListTablesResponse{
		TableNames:             nonNil(out.TableNames),
		LastEvaluatedTableName: out.LastEvaluatedTableName,
	}
}
