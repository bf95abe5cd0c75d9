package store

// Query names. They label logs, spans and metrics, and key MockClient scripts.
const (
	QueryCreateItem                 = "create_item"
	QueryCreateCustomer             = "create_customer"
	QueryCreateOrder                = "create_order"
	QueryCustomerBoughtOrder        = "customer_bought_order"
	QueryOrderContainsItem          = "order_contains_item"
	QueryCustomerViewItem           = "customer_view_item"
	QueryGetItem                    = "get_item"
	QueryFindItemsInOrder           = "find_items_in_order"
	QueryCalculateOrderCost         = "calculate_order_cost"
	QueryFindOrdersByCustomer       = "find_orders_by_customer"
	QueryFindItemsBoughtByCustomer  = "find_items_bought_by_customer"
	QueryCountItemsBoughtByCustomer = "count_items_bought_by_customer"
	QueryTotalAmountSpent           = "total_amount_spent_by_customer"
	QueryFindMostBoughtItems        = "find_most_bought_items"
	QueryFindItemsViewedByCustomer  = "find_items_viewed_by_customer"
	QueryFindItemsBoughtTogether    = "find_items_bought_together"
	QueryFindCustomersBoughtItem    = "find_customers_bought_item"
	QueryFindViewedNotBought        = "find_viewed_not_bought"
	QueryClearDatabase              = "clear_database"
	QueryEnsureConstraint           = "ensure_constraint"
)

const (
	cypherCreateItem = `CREATE (i:Item {id: $id, name: $name, price: $price})`

	cypherCreateCustomer = `CREATE (c:Customer {id: $id, name: $name})`

	cypherCreateOrder = `CREATE (o:Order {id: $id, time: $time})`

	cypherCustomerBoughtOrder = `
		MATCH (c:Customer {name: $customer_name}), (o:Order {id: $order_id})
		CREATE (c)-[:BOUGHT]->(o)`

	cypherOrderContainsItem = `
		MATCH (o:Order {id: $order_id}), (i:Item {name: $item_name})
		CREATE (o)-[:CONTAINS]->(i)`

	cypherCustomerViewItem = `
		MATCH (c:Customer {name: $customer_name}), (i:Item {id: $item_id})
		CREATE (c)-[:VIEWED]->(i)`

	cypherGetItem = `
		MATCH (i:Item {id: $id})
		RETURN i.id AS id, i.name AS name, i.price AS price
		LIMIT 1`

	cypherFindItemsInOrder = `
		MATCH (o:Order {id: $order_id})-[:CONTAINS]->(i:Item)
		RETURN i.name AS name
		ORDER BY name`

	cypherCalculateOrderCost = `
		MATCH (o:Order {id: $order_id})-[:CONTAINS]->(i:Item)
		RETURN sum(i.price) AS total_cost`

	cypherFindOrdersByCustomer = `
		MATCH (c:Customer {name: $customer_name})-[:BOUGHT]->(o:Order)
		RETURN o.id AS id
		ORDER BY id`

	cypherFindItemsBoughtByCustomer = `
		MATCH (c:Customer {name: $customer_name})-[:BOUGHT]->(o:Order)-[:CONTAINS]->(i:Item)
		RETURN i.name AS name
		ORDER BY name`

	cypherCountItemsBoughtByCustomer = `
		MATCH (c:Customer {name: $customer_name})-[:BOUGHT]->(o:Order)-[:CONTAINS]->(i:Item)
		RETURN count(i) AS item_count`

	cypherTotalAmountSpent = `
		MATCH (c:Customer {name: $customer_name})-[:BOUGHT]->(o:Order)-[:CONTAINS]->(i:Item)
		RETURN sum(i.price) AS total_spent`

	cypherFindMostBoughtItems = `
		MATCH (o:Order)-[:CONTAINS]->(i:Item)
		RETURN i.name AS name, count(o) AS purchase_count
		ORDER BY purchase_count DESC, name ASC`

	cypherFindItemsViewedByCustomer = `
		MATCH (c:Customer {name: $customer_name})-[:VIEWED]->(i:Item)
		RETURN i.name AS name
		ORDER BY name`

	cypherFindItemsBoughtTogether = `
		MATCH (i:Item {id: $item_id})<-[:CONTAINS]-(o:Order)-[:CONTAINS]->(other:Item)
		RETURN other.name AS name
		ORDER BY name`

	cypherFindCustomersBoughtItem = `
		MATCH (i:Item {id: $item_id})<-[:CONTAINS]-(o:Order)<-[:BOUGHT]-(c:Customer)
		RETURN c.name AS name
		ORDER BY name`

	cypherFindViewedNotBought = `
		MATCH (c:Customer {name: $customer_name})-[:VIEWED]->(i:Item)
		WHERE NOT EXISTS { (c)-[:BOUGHT]->(:Order)-[:CONTAINS]->(i) }
		RETURN i.name AS name
		ORDER BY name`

	cypherClearDatabase = `MATCH (n) DETACH DELETE n`
)

// constraints are the uniqueness constraints declared by EnsureSchema.
var constraints = []string{
	`CREATE CONSTRAINT item_id_unique IF NOT EXISTS FOR (i:Item) REQUIRE i.id IS UNIQUE`,
	`CREATE CONSTRAINT customer_id_unique IF NOT EXISTS FOR (c:Customer) REQUIRE c.id IS UNIQUE`,
	`CREATE CONSTRAINT order_id_unique IF NOT EXISTS FOR (o:Order) REQUIRE o.id IS UNIQUE`,
}
