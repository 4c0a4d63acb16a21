package shopify

// orderTrackingFields is the shared field selection for all three tracking
// lookups. The by-id/by-number/by-email variants differ only in how the
// order node is reached, so the normalization code never needs to know
// which variant produced its input.
const orderTrackingFields = `
      id
      name
      email
      createdAt
      displayFulfillmentStatus
      confirmationNumber
      cancelledAt
      cancelReason
      closedAt

      subtotalPriceSet { shopMoney { amount currencyCode } }
      totalShippingPriceSet { shopMoney { amount currencyCode } }
      totalTaxSet { shopMoney { amount currencyCode } }
      totalDiscountsSet { shopMoney { amount currencyCode } }
      totalPriceSet { shopMoney { amount currencyCode } }

      shippingAddress {
        address1
        address2
        city
        province
        provinceCode
        country
        countryCode
        zip
        firstName
        lastName
        formatted
      }

      fulfillments(first: 10) {
        id
        displayStatus
        estimatedDeliveryAt
        deliveredAt

        trackingInfo(first: 10) {
          company
          number
          url
        }

        fulfillmentLineItems(first: 50) {
          edges {
            node {
              id
              quantity
              lineItem {
                id
                title
                originalUnitPriceSet { shopMoney { amount currencyCode } }
                discountedUnitPriceSet { shopMoney { amount currencyCode } }
                product {
                  id
                  title
                }
                variant {
                  id
                  title
                  sku
                  image {
                    url
                    altText
                  }
                }
              }
            }
          }
        }

        events(first: 50, sortKey: HAPPENED_AT, reverse: true) {
          edges {
            node {
              status
              message
              happenedAt
              city
              province
              country
            }
          }
        }
      }
`

// TrackOrderByIDQuery fetches an order directly by its Shopify GID
const TrackOrderByIDQuery = `
query trackOrderById($id: ID!) {
  order(id: $id) {` + orderTrackingFields + `}
}
`

// TrackOrderByNameQuery finds an order by name filter (query is e.g. "name:#1001")
const TrackOrderByNameQuery = `
query trackOrderByName($query: String!) {
  orders(first: 1, query: $query) {
    edges {
      node {` + orderTrackingFields + `}
    }
  }
}
`

// TrackOrderByEmailQuery finds the most recent order for an email filter
const TrackOrderByEmailQuery = `
query trackOrderByEmail($query: String!) {
  orders(first: 1, sortKey: CREATED_AT, reverse: true, query: $query) {
    edges {
      node {` + orderTrackingFields + `}
    }
  }
}
`

// OrderIDByNameQuery resolves an order number to its GID
const OrderIDByNameQuery = `
query orderIdByName($query: String!) {
  orders(first: 1, query: $query) {
    edges {
      node {
        id
      }
    }
  }
}
`

// SearchProductsQuery fetches products matching a search filter
const SearchProductsQuery = `
query searchProducts($query: String!) {
  products(first: 25, query: $query) {
    edges {
      node {
        id
        title
        description
        handle
        status
        totalInventory
        priceRangeV2 {
          minVariantPrice {
            amount
            currencyCode
          }
          maxVariantPrice {
            amount
            currencyCode
          }
        }
        featuredImage {
          url
          altText
        }
      }
    }
  }
}
`
